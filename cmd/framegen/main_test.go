package main

import (
	"bytes"
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/framegen/internal/store"
)

const dialog = `ui: {
	name: "Dialog"
	window: {title: "Dialog", width: 200, height: 100}
	widgets: [{name: "ok", kind: "button", text: "OK"}]
	layout: [{widget: "ok", corner: "lowerRight"}]
	assign: [{path: "owner.dialog", value: "window"}]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Stdout(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dialog.cue", dialog)
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), options{}, []string{path}, &stdout))
	assert.Contains(t, stdout.String(), "NSWindow *createDialog(id owner);")
	assert.Contains(t, stdout.String(), "[owner setDialog:_window1];")
}

func TestRun_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dialog.cue", dialog)
	out := filepath.Join(dir, "out")
	var stdout, logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	require.NoError(t, run(context.Background(), options{outDir: out, funcName: "OK"}, []string{path}, &stdout))
	assert.Empty(t, stdout.String())
	assert.Less(t, strings.Index(logs.String(), "OK.h"), strings.Index(logs.String(), "OK.m"))
	assert.NotEqual(t, -1, strings.Index(logs.String(), "OK.h"))

	h, err := os.ReadFile(filepath.Join(out, "OK.h"))
	require.NoError(t, err)
	assert.Contains(t, string(h), "NSWindow *createOK(id owner);")
	m, err := os.ReadFile(filepath.Join(out, "OK.m"))
	require.NoError(t, err)
	assert.Contains(t, string(m), "#import \"OK.h\"")
}

func TestRun_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "dialog.cue", dialog)
	bad := writeFile(t, dir, "bad.cue", "ui: {")
	var stdout bytes.Buffer
	err := run(context.Background(), options{}, []string{good, bad, filepath.Join(dir, "missing.cue")}, &stdout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3")
	assert.Contains(t, stdout.String(), "createDialog")
}

func TestRun_RecordsRuns(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dialog.cue", dialog)
	dbPath := filepath.Join(dir, "runs.db")
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), options{dbPath: dbPath}, []string{path}, &stdout))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()
	runs, err := store.NewSQLiteStore(db).List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "Dialog", runs[0].Name)
	assert.Equal(t, dialog, runs[0].Source)
}

func TestRun_RejectsBadFuncName(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dialog.cue", dialog)
	var stdout bytes.Buffer
	err := run(context.Background(), options{funcName: "a b"}, []string{path}, &stdout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1")
	assert.Empty(t, stdout.String())
}
