package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Ibramnsh/backend-sidokepung/internal/pekerjaan/models"
	dErrors "github.com/Ibramnsh/backend-sidokepung/pkg/domain-errors"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/sentinel"
	"github.com/Ibramnsh/backend-sidokepung/pkg/requestcontext"
)

// DefaultQueryTimeout bounds List.
const DefaultQueryTimeout = 8 * time.Second

// User-facing messages.
const (
	MsgFieldsRequired = "All fields must be filled."
	MsgInvalidGender  = "jenis_kelamin must be Laki-laki or Perempuan."
	MsgInvalidID      = "Invalid ID."
	MsgNotFound       = "Data not found."
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

// Store persists resident job records.
type Store interface {
	List(ctx context.Context, filter models.Filter) ([]*models.Record, error)
	ListResidents(ctx context.Context) ([]models.Resident, error)
	Create(ctx context.Context, r *models.Record) error
	Update(ctx context.Context, r *models.Record) error
	Delete(ctx context.Context, id string) error
}

// Service implements resident job record operations.
type Service struct {
	store        Store
	logger       *slog.Logger
	queryTimeout time.Duration
	newID        func() string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithQueryTimeout overrides DefaultQueryTimeout. Non-positive values are ignored.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.queryTimeout = d
		}
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:        store,
		logger:       slog.Default(),
		queryTimeout: DefaultQueryTimeout,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every record with a gender, optionally narrowed to one RT/RW.
func (s *Service) List(ctx context.Context, filter models.Filter) ([]*models.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	records, err := s.store.List(ctx, filter)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "query timed out")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch records")
	}
	return records, nil
}

// ListResidents is the resident source for the map aggregation.
func (s *Service) ListResidents(ctx context.Context) ([]models.Resident, error) {
	residents, err := s.store.ListResidents(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch residents")
	}
	return residents, nil
}

// Create stores a new record and returns its id.
func (s *Service) Create(ctx context.Context, req models.WriteRequest) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}
	r := recordFrom(req)
	r.ID = s.newID()
	r.IDKeluarga = models.DefaultFamilyID
	r.CreatedAt = requestcontext.Now(ctx)

	if err := s.store.Create(ctx, r); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to add data")
	}
	s.logger.InfoContext(ctx, "resident record created",
		"request_id", requestcontext.RequestID(ctx),
		"record_id", r.ID,
		"admin", requestcontext.Username(ctx),
	)
	return r.ID, nil
}

// Update replaces the editable fields of the record with the given id.
func (s *Service) Update(ctx context.Context, id string, req models.WriteRequest) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := validate(req); err != nil {
		return err
	}
	r := recordFrom(req)
	r.ID = id

	if err := s.store.Update(ctx, r); err != nil {
		return storeError(err, "failed to update data")
	}
	s.logger.InfoContext(ctx, "resident record updated",
		"request_id", requestcontext.RequestID(ctx),
		"record_id", id,
		"admin", requestcontext.Username(ctx),
	)
	return nil
}

// Delete removes the record with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return storeError(err, "failed to delete data")
	}
	s.logger.InfoContext(ctx, "resident record deleted",
		"request_id", requestcontext.RequestID(ctx),
		"record_id", id,
		"admin", requestcontext.Username(ctx),
	)
	return nil
}

func validate(req models.WriteRequest) error {
	if !req.Complete() {
		return dErrors.New(dErrors.CodeValidation, MsgFieldsRequired)
	}
	if !models.ValidGender(req.JenisKelamin) {
		return dErrors.New(dErrors.CodeValidation, MsgInvalidGender)
	}
	return nil
}

func validateID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, MsgInvalidID)
	}
	return nil
}

func storeError(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, MsgNotFound)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func recordFrom(req models.WriteRequest) *models.Record {
	return &models.Record{
		RT:                   req.RT.Int(),
		RW:                   req.RW.Int(),
		Umur:                 req.Umur.Int(),
		JenisKelamin:         req.JenisKelamin,
		StatusPekerjaanUtama: req.StatusPekerjaanUtama,
		NamaAnggota:          req.NamaAnggota,
	}
}
