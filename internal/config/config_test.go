package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	apperrors "github.com/xmb505/SuperPi/internal/errors"
	"github.com/xmb505/SuperPi/internal/pi"
)

var testAlgos = []string{"agm", "machin"}

func TestParseConfig(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, cfg AppConfig)
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Digits != pi.DefaultDigits {
					t.Errorf("Digits = %d, want %d", cfg.Digits, pi.DefaultDigits)
				}
				if cfg.Algo != "machin" {
					t.Errorf("Algo = %q, want machin", cfg.Algo)
				}
				if cfg.Timeout != 0 {
					t.Errorf("Timeout = %v, want 0", cfg.Timeout)
				}
			},
		},
		{
			name: "explicit digits and algo",
			args: []string{"-digits", "5000", "-algo", "agm"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Digits != 5000 || cfg.Algo != "agm" {
					t.Errorf("cfg = %+v", cfg)
				}
			},
		},
		{
			name: "algo normalized to lower case",
			args: []string{"-algo", "AGM"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Algo != "agm" {
					t.Errorf("Algo = %q, want agm", cfg.Algo)
				}
			},
		},
		{
			name: "all algorithms",
			args: []string{"-algo", "all", "-digits", "100"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Algo != "all" {
					t.Errorf("Algo = %q, want all", cfg.Algo)
				}
			},
		},
		{
			name: "precision tuning flags",
			args: []string{"-margin", "4096", "-extra-terms", "200"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.PrecisionMargin != 4096 || cfg.ExtraTerms != 200 {
					t.Errorf("cfg = %+v", cfg)
				}
			},
		},
		{
			name: "timeout",
			args: []string{"-timeout", "90s"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Timeout != 90*time.Second {
					t.Errorf("Timeout = %v", cfg.Timeout)
				}
			},
		},
		{
			name:    "zero digits rejected",
			args:    []string{"-digits", "0"},
			wantErr: true,
		},
		{
			name:    "unknown algorithm rejected",
			args:    []string{"-algo", "chudnovsky"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"-frobnicate"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg, err := ParseConfig("superpi", tc.args, &buf, testAlgos)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseConfig(%v) error = %v, wantErr %v\noutput: %s", tc.args, err, tc.wantErr, buf.String())
			}
			if tc.check != nil && err == nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	base := AppConfig{Digits: 1000, Algo: "machin"}

	t.Run("valid", func(t *testing.T) {
		if err := base.Validate(testAlgos); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("digit count out of range", func(t *testing.T) {
		cfg := base
		cfg.Digits = pi.MaxDigits + 1
		if err := cfg.Validate(testAlgos); !apperrors.IsInvalidDigitCount(err) {
			t.Errorf("error = %v, want InvalidDigitCountError", err)
		}
	})

	t.Run("negative timeout", func(t *testing.T) {
		cfg := base
		cfg.Timeout = -time.Second
		if err := cfg.Validate(testAlgos); err == nil {
			t.Error("negative timeout accepted")
		}
	})

	t.Run("zero timeout means no deadline", func(t *testing.T) {
		cfg := base
		cfg.Timeout = 0
		if err := cfg.Validate(testAlgos); err != nil {
			t.Errorf("zero timeout rejected: %v", err)
		}
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("env applies when flag unset", func(t *testing.T) {
		t.Setenv("SUPERPI_DIGITS", "4242")
		t.Setenv("SUPERPI_ALGO", "agm")

		cfg, err := ParseConfig("superpi", nil, &bytes.Buffer{}, testAlgos)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Digits != 4242 || cfg.Algo != "agm" {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv("SUPERPI_DIGITS", "4242")

		cfg, err := ParseConfig("superpi", []string{"-digits", "77"}, &bytes.Buffer{}, testAlgos)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Digits != 77 {
			t.Errorf("Digits = %d, want 77", cfg.Digits)
		}
	})

	t.Run("invalid env value falls back to default", func(t *testing.T) {
		t.Setenv("SUPERPI_DIGITS", "not-a-number")

		cfg, err := ParseConfig("superpi", nil, &bytes.Buffer{}, testAlgos)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Digits != pi.DefaultDigits {
			t.Errorf("Digits = %d, want default %d", cfg.Digits, pi.DefaultDigits)
		}
	})

	t.Run("boolean env parsing", func(t *testing.T) {
		t.Setenv("SUPERPI_QUIET", "yes")
		t.Setenv("SUPERPI_JSON", "1")

		cfg, err := ParseConfig("superpi", nil, &bytes.Buffer{}, testAlgos)
		if err != nil {
			t.Fatal(err)
		}
		if !cfg.Quiet || !cfg.JSONOutput {
			t.Errorf("cfg = %+v", cfg)
		}
	})
}

func TestResolvedOutputFile(t *testing.T) {
	testCases := []struct {
		name string
		cfg  AppConfig
		want string
	}{
		{"default name derived from digits", AppConfig{Digits: 10000}, "pi_10000.txt"},
		{"explicit path", AppConfig{Digits: 10, OutputFile: "out.txt"}, "out.txt"},
		{"dash disables file output", AppConfig{Digits: 10, OutputFile: "-"}, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.ResolvedOutputFile(); got != tc.want {
				t.Errorf("ResolvedOutputFile() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUsageMessage(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("superpi", []string{"-h"}, &buf, testAlgos)
	if err == nil {
		t.Fatal("expected flag.ErrHelp")
	}
	if !strings.Contains(buf.String(), "SUPERPI_") {
		t.Errorf("usage does not mention the env prefix:\n%s", buf.String())
	}
}
