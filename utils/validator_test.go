package utils

import (
	"testing"
	"time"
)

type sampleInput struct {
	Title    string    `json:"title" validate:"notblank,max=20"`
	Priority string    `json:"priority" validate:"oneof=low medium high"`
	Start    time.Time `json:"start_date" validate:"required"`
	End      time.Time `json:"end_date" validate:"required,gtefield=Start"`
}

func TestValidateStruct(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		input   sampleInput
		wantErr string
	}{
		{"valid", sampleInput{Title: "Cup", Priority: "low", Start: now, End: now}, ""},
		{"blank title", sampleInput{Title: "   ", Priority: "low", Start: now, End: now}, "title is required"},
		{"bad priority", sampleInput{Title: "Cup", Priority: "urgent", Start: now, End: now}, "priority must be one of: low medium high"},
		{"end before start", sampleInput{Title: "Cup", Priority: "high", Start: now, End: now.Add(-time.Hour)}, "end_date must not be before Start"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("got %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	BcryptCost = 4
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if ok, err := CheckPasswordHash("s3cret", hash); !ok || err != nil {
		t.Errorf("expected match, got %v %v", ok, err)
	}
	if ok, err := CheckPasswordHash("wrong", hash); ok || err != nil {
		t.Errorf("expected mismatch without error, got %v %v", ok, err)
	}
}
