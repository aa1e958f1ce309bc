package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/numparse"
)

// Gender values accepted for a resident record.
const (
	GenderMale   = "Laki-laki"
	GenderFemale = "Perempuan"
)

// DefaultFamilyID is assigned to records created through the API.
const DefaultFamilyID = "KEL_BARU"

// ValidGender reports whether g is one of the enumerated values.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

// Record is one resident's job entry.
type Record struct {
	ID                   string
	RT                   int
	RW                   int
	Umur                 int
	JenisKelamin         string
	StatusPekerjaanUtama string
	NamaAnggota          string
	IDKeluarga           string
	CreatedAt            time.Time
}

// Resident is the projection of a record used by the map aggregation.
type Resident struct {
	RT           int
	RW           int
	JenisKelamin string
}

// Filter narrows List to one RT/RW pair. It applies only when both are set.
type Filter struct {
	RT *int
	RW *int
}

// Active reports whether the filter constrains the result.
func (f Filter) Active() bool {
	return f.RT != nil && f.RW != nil
}

// WriteRequest is the body accepted by create and update.
type WriteRequest struct {
	RT                   FlexInt `json:"rt"`
	RW                   FlexInt `json:"rw"`
	Umur                 FlexInt `json:"umur"`
	JenisKelamin         string  `json:"jenis_kelamin"`
	StatusPekerjaanUtama string  `json:"status_pekerjaan_utama"`
	NamaAnggota          string  `json:"nama_anggota"`
}

// Complete reports whether every numeric field is present and every text
// field is non-blank.
func (r WriteRequest) Complete() bool {
	return r.RT.Set() && r.RW.Set() && r.Umur.Set() &&
		strings.TrimSpace(r.JenisKelamin) != "" &&
		strings.TrimSpace(r.StatusPekerjaanUtama) != "" &&
		strings.TrimSpace(r.NamaAnggota) != ""
}

// RecordResponse is the list item shape; rt and rw are rendered as strings.
type RecordResponse struct {
	ID                   string `json:"_id"`
	RT                   string `json:"rt"`
	RW                   string `json:"rw"`
	Umur                 int    `json:"umur"`
	JenisKelamin         string `json:"jenis_kelamin"`
	StatusPekerjaanUtama string `json:"status_pekerjaan_utama"`
	NamaAnggota          string `json:"nama_anggota"`
}

// ToResponse renders a record for the list endpoint.
func ToResponse(r *Record) RecordResponse {
	return RecordResponse{
		ID:                   r.ID,
		RT:                   strconv.Itoa(r.RT),
		RW:                   strconv.Itoa(r.RW),
		Umur:                 r.Umur,
		JenisKelamin:         r.JenisKelamin,
		StatusPekerjaanUtama: r.StatusPekerjaanUtama,
		NamaAnggota:          r.NamaAnggota,
	}
}

// CreateResponse is returned by a successful create.
type CreateResponse struct {
	Message    string `json:"message"`
	InsertedID string `json:"insertedId"`
}

// MessageResponse is returned by update and delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// FlexInt decodes a JSON number or numeric string. Strings are read by
// their leading integer prefix, so "05" and "5a" both yield 5. Zero is a
// value; only null, a missing member, or text with no integer prefix leaves
// it unset.
type FlexInt struct {
	value int
	ok    bool
}

// NewFlexInt builds a set FlexInt, mainly for tests and callers in Go.
func NewFlexInt(v int) FlexInt {
	return FlexInt{value: v, ok: true}
}

// Int returns the parsed value.
func (f FlexInt) Int() int { return f.value }

// Set reports whether a usable value was supplied.
func (f FlexInt) Set() bool { return f.ok }

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = FlexInt{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if v, ok := numparse.LeadingInt(s); ok {
			*f = NewFlexInt(v)
		}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if v, ok := numparse.LeadingInt(n.String()); ok {
		*f = NewFlexInt(v)
	}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.ok {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.value)), nil
}
