package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:     "missing source",
			err:      fmt.Errorf("%w: cleaned CSV not found at data/x.csv", ErrSourceNotFound),
			wantCode: "SRC001",
		},
		{
			name:     "empty file",
			err:      fmt.Errorf("read data/x.csv: %w", ErrEmptyFile),
			wantCode: "FILE002",
		},
		{
			name:     "malformed csv",
			err:      errors.New(`read data/x.csv: invalid csv: parse error on line 4, column 9: bare " in non-quoted-field`),
			wantCode: "FILE003",
		},
		{
			name:     "disk full",
			err:      errors.New("insert row 10 (ein 1): database or disk is full (13)"),
			wantCode: "DB001",
		},
		{
			name:     "readonly",
			err:      errors.New("create schema: attempt to write a readonly database"),
			wantCode: "DB003",
		},
		{
			name:     "permission denied",
			err:      errors.New("create database: create dirs: mkdir /data: permission denied"),
			wantCode: "DB003",
		},
		{
			name:     "locked",
			err:      errors.New("begin insert transaction: database is locked"),
			wantCode: "DB004",
		},
		{
			name:     "mirror connect",
			err:      errors.New("mirror: connect: dial tcp 127.0.0.1:5432: connect: connection refused"),
			wantCode: "MIR001",
		},
		{
			name:     "mirror timeout",
			err:      errors.New("mirror: copy rows: context deadline exceeded"),
			wantCode: "MIR002",
		},
		{
			name:     "mirror other",
			err:      errors.New("mirror: create table: permission denied for schema public"),
			wantCode: "MIR003",
		},
		{
			name:     "unknown error",
			err:      errors.New("something strange"),
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.err != nil && (got.Message == "" || got.Action == "") {
				t.Errorf("MapError() = %+v, want message and action", got)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	got := FormatUserError(fmt.Errorf("%w: cleaned CSV not found", ErrSourceNotFound))
	if !strings.Contains(got, "(Code: SRC001)") {
		t.Errorf("FormatUserError() = %q, want code SRC001", got)
	}
	if !strings.Contains(got, "cleaning step") {
		t.Errorf("FormatUserError() = %q, want remediation", got)
	}
}
