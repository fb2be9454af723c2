package models

import (
	"errors"
	"testing"
)

func TestTagInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   TagInput
		wantErr bool
	}{
		{name: "plain name", input: TagInput{Name: "sunset"}},
		{name: "staff tag", input: TagInput{Name: "featured", StaffTag: true}},
		{name: "surrounding whitespace", input: TagInput{Name: "  beach  "}},
		{name: "empty name", input: TagInput{Name: ""}, wantErr: true},
		{name: "whitespace only", input: TagInput{Name: " \t\n"}, wantErr: true},
		{name: "missing name with staff flag", input: TagInput{StaffTag: true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if verr.Field != "name" {
				t.Errorf("expected field 'name', got %q", verr.Field)
			}
		})
	}
}

func TestTagInput_Apply(t *testing.T) {
	tag := Tag{ID: 7, Name: "old"}
	TagInput{Name: "  new  ", StaffTag: true}.Apply(&tag)

	if tag.ID != 7 {
		t.Errorf("expected id to stay 7, got %d", tag.ID)
	}
	if tag.Name != "  new  " {
		t.Errorf("expected name to be copied unchanged, got %q", tag.Name)
	}
	if !tag.StaffTag {
		t.Error("expected staff tag to be set")
	}
}

func TestTag_BeforeSave(t *testing.T) {
	if err := (&Tag{Name: "sunset"}).BeforeSave(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := (&Tag{Name: "   "}).BeforeSave(nil)
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTagsetInput_Validate(t *testing.T) {
	if err := (TagsetInput{Title: "Summer", Harvest: true}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var verr *ValidationError
	err := TagsetInput{Title: " "}.Validate()
	if !errors.As(err, &verr) || verr.Field != "title" {
		t.Fatalf("expected title validation error, got %v", err)
	}
}

func TestImageInput_Validate(t *testing.T) {
	tests := []struct {
		name      string
		input     ImageInput
		wantField string
	}{
		{name: "valid url", input: ImageInput{URL: "https://example.com/a.jpg"}},
		{name: "blank url", input: ImageInput{URL: ""}, wantField: "url"},
		{name: "not a url", input: ImageInput{URL: "not a url"}, wantField: "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, verr.Field)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError("name", "can't be blank")
	if got := err.Error(); got != "validation failed: name can't be blank" {
		t.Errorf("unexpected message %q", got)
	}
}
