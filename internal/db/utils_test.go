package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func TestParseUUID(t *testing.T) {
	validUUID := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
	tests := []struct {
		name    string
		id      string
		wantErr bool
		want    pgtype.UUID
	}{
		{
			name: "valid",
			id:   "550e8400-e29b-41d4-a716-446655440000",
			want: pgtype.UUID{Bytes: validUUID, Valid: true},
		},
		{
			name: "valid with whitespace",
			id:   "  550e8400-e29b-41d4-a716-446655440000  ",
			want: pgtype.UUID{Bytes: validUUID, Valid: true},
		},
		{
			name:    "invalid format",
			id:      "not-a-uuid",
			wantErr: true,
		},
		{
			name:    "empty",
			id:      "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUUID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseUUID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && (got.Valid != tt.want.Valid || got.Bytes != tt.want.Bytes) {
				t.Errorf("ParseUUID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUUID(t *testing.T) {
	if !IsUUID("550e8400-e29b-41d4-a716-446655440000") {
		t.Error("expected valid UUID to be accepted")
	}
	if IsUUID("alice@example.com") {
		t.Error("expected non-UUID to be rejected")
	}
}

func TestTimeFromPg(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		value pgtype.Timestamptz
		want  time.Time
	}{
		{"valid", pgtype.Timestamptz{Time: now, Valid: true}, now},
		{"invalid", pgtype.Timestamptz{}, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeFromPg(tt.value)
			if !got.Equal(tt.want) {
				t.Errorf("TimeFromPg() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextToString(t *testing.T) {
	tests := []struct {
		name  string
		value pgtype.Text
		want  string
	}{
		{"valid", pgtype.Text{String: "hello", Valid: true}, "hello"},
		{"invalid", pgtype.Text{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextToString(tt.value); got != tt.want {
				t.Errorf("TextToString() = %q, want %q", got, tt.want)
			}
		})
	}
}
