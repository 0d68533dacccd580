package types

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Draft carries the editable fields of a record into Create and Update. For
// Update, IsGroup is ignored: a record's kind is fixed at creation.
type Draft struct {
	Name        string   `validate:"notblank"`
	Content     string   `validate:"-"`
	FontSize    *int     `validate:"omitempty,min=16,max=64"`
	ScrollSpeed *float64 `validate:"omitempty,gte=0.1,lte=5"`
	ParentID    *int64   `validate:"-"`
	IsGroup     bool     `validate:"-"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		v.RegisterStructValidation(draftStructLevel, Draft{})
		validate = v
	})
	return validate
}

// draftStructLevel requires content on scripts. Groups carry no content.
func draftStructLevel(sl validator.StructLevel) {
	d := sl.Current().Interface().(Draft)
	if !d.IsGroup && strings.TrimSpace(d.Content) == "" {
		sl.ReportError(d.Content, "Content", "Content", "notblank", "")
	}
}

// Validate checks the draft field rules and returns the sentinel error for
// the first failing field: ErrInvalidName, ErrInvalidContent,
// ErrInvalidFontSize or ErrSpeedOutOfRange.
func (d Draft) Validate() error {
	err := getValidator().Struct(d)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return ErrInvalidData
	}
	switch ve[0].Field() {
	case "Name":
		return ErrInvalidName
	case "Content":
		return ErrInvalidContent
	case "FontSize":
		return ErrInvalidFontSize
	case "ScrollSpeed":
		return ErrSpeedOutOfRange
	default:
		return ErrInvalidData
	}
}

// Clone returns a copy whose pointer fields do not alias d's.
func (d Draft) Clone() Draft {
	c := d
	if d.FontSize != nil {
		c.FontSize = IntPtr(*d.FontSize)
	}
	if d.ScrollSpeed != nil {
		c.ScrollSpeed = FloatPtr(*d.ScrollSpeed)
	}
	if d.ParentID != nil {
		c.ParentID = IDPtr(*d.ParentID)
	}
	return c
}
