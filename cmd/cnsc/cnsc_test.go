package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expertap/internal/config"
	"expertap/internal/domain"
	"expertap/internal/parser"
	"expertap/internal/service"
	"expertap/internal/storage/local"
)

const sampleFilename = "BO2025_3855_R2_CPV_55520000-1_A.txt"

const sampleDecision = `Decizia Nr. 3855/C8/4446
din 10 decembrie 2025

Contestator: ALFA SERV S.R.L.
Autoritate contractantă: Spitalul Județean Bacău

CONSILIUL DECIDE:

Admite, în parte, contestația formulată de ALFA SERV S.R.L.
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeSample(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParseCmd_JSON(t *testing.T) {
	path := writeSample(t, t.TempDir(), sampleFilename, sampleDecision)

	out, err := execute(t, "parse", path)
	require.NoError(t, err)

	var got struct {
		ExternalID     string   `json:"external_id"`
		Title          string   `json:"title"`
		Filename       string   `json:"filename"`
		Ruling         string   `json:"ruling"`
		CriticismCodes []string `json:"criticism_codes"`
		Sections       []struct {
			Kind string `json:"kind"`
			Text string `json:"text"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "BO2025_3855", got.ExternalID)
	assert.Equal(t, "BO2025 - Nr. 3855 - [R2] - [PARTIALLY_ADMITTED]", got.Title)
	assert.Equal(t, sampleFilename, got.Filename)
	assert.Equal(t, "PARTIALLY_ADMITTED", got.Ruling)
	assert.Equal(t, []string{"R2"}, got.CriticismCodes)
	require.NotEmpty(t, got.Sections)
	for _, s := range got.Sections {
		assert.Empty(t, s.Text, "section %s", s.Kind)
	}
}

func TestParseCmd_MultipleFilesAsArray(t *testing.T) {
	dir := t.TempDir()
	a := writeSample(t, dir, sampleFilename, sampleDecision)
	b := writeSample(t, dir, "BO2024_12_D1_R.txt", "CONSILIUL DECIDE:\n\nRespinge, ca nefondată, contestația.\n")

	out, err := execute(t, "parse", a, b)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "BO2025_3855", got[0]["external_id"])
	assert.Equal(t, "BO2024_12", got[1]["external_id"])
	assert.Equal(t, "REJECTED", got[1]["ruling"])
}

func TestParseCmd_YAMLWithSections(t *testing.T) {
	path := writeSample(t, t.TempDir(), sampleFilename, sampleDecision)

	out, err := execute(t, "parse", "--format", "yaml", "--sections", path)
	require.NoError(t, err)

	assert.Contains(t, out, "external_id: BO2025_3855")
	assert.Contains(t, out, "kind: dispositive")
	assert.Contains(t, out, "Admite, în parte")
}

func TestParseCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir, sampleFilename, sampleDecision)

	_, err := execute(t, "parse", "--format", "xml", path)
	assert.ErrorContains(t, err, "unsupported format")

	_, err = execute(t, "parse", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	empty := writeSample(t, dir, "BO2025_1_D1_A.txt", "  \n")
	_, err = execute(t, "parse", empty)
	assert.ErrorIs(t, err, parser.ErrEmptyText)
}

func TestWriteParsed_KeepsResultUntouched(t *testing.T) {
	d, err := parser.New().Parse(sampleDecision, sampleFilename)
	require.NoError(t, err)
	require.NotEmpty(t, d.Sections)

	var buf bytes.Buffer
	require.NoError(t, writeParsed(&buf, []*parser.ParsedDecision{d}, "json", false))
	assert.NotEmpty(t, d.Sections[0].Text)
}

func TestCodesCmd(t *testing.T) {
	out, err := execute(t, "codes")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 17)
	assert.True(t, strings.HasPrefix(lines[0], "CODE"))
	assert.Contains(t, out, "R2")
	assert.Contains(t, out, "documentation")

	out, err = execute(t, "codes", "--format", "json")
	require.NoError(t, err)
	var codes []parser.CodeInfo
	require.NoError(t, json.Unmarshal([]byte(out), &codes))
	assert.Len(t, codes, 16)
	assert.Equal(t, parser.CriticismCode("D1"), codes[0].Code)

	_, err = execute(t, "codes", "--format", "csv")
	assert.Error(t, err)
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("EXPERTAP_AUTH_SECRET", "test-secret")

	out, err := execute(t, "token", "--subject", "ops@example.ro", "--role", "admin", "--ttl", "1h")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "# expires "))

	cfg, err := config.Load()
	require.NoError(t, err)
	claims, err := service.NewAuthService(cfg.Auth).ValidateToken(lines[0])
	require.NoError(t, err)
	assert.Equal(t, "ops@example.ro", claims.Subject)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestTokenCmd_Invalid(t *testing.T) {
	_, err := execute(t, "token", "--role", "admin")
	assert.Error(t, err)

	_, err = execute(t, "token", "--subject", "x", "--role", "root")
	assert.Error(t, err)
}

func TestApplyImportFlags(t *testing.T) {
	cmd := newImportCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--source", "DIR", "--limit", "5", "--concurrency", "2"}))

	cfg := config.ImportConfig{Source: "s3", Dir: "./data", BatchSize: 50, Concurrency: 4}
	f := importFlags{source: "DIR", limit: 5, concurrency: 2}
	applyImportFlags(cmd, &cfg, f)

	assert.Equal(t, "dir", cfg.Source)
	assert.Equal(t, "./data", cfg.Dir)
	assert.Equal(t, 5, cfg.Limit)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 2, cfg.Concurrency)
}

func TestNewSource(t *testing.T) {
	cfg := &config.Config{
		S3:     config.S3Config{Bucket: "bucket", Prefix: "decisions/"},
		Import: config.ImportConfig{Source: "dir", Dir: t.TempDir()},
	}
	_, ok := newSource(cfg, nil).(*local.Source)
	assert.True(t, ok)

	cfg.Import.Source = "s3"
	assert.Equal(t, "s3://bucket/decisions/", newSource(cfg, nil).Name())

	cfg.Import.Prefix = "2025/"
	assert.Equal(t, "s3://bucket/2025/", newSource(cfg, nil).Name())
}

func TestWriteImportStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeImportStats(&buf, &domain.ImportStats{Total: 3, Imported: 2, Failed: 1}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.InDelta(t, 3, got["total_files"], 0)
	assert.Equal(t, []any{}, got["errors"])
}
