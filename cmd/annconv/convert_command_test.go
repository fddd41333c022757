package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"annconv/internal/testsupport"
)

func TestConvertWritesTaggingFile(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	textPath := filepath.Join(dir, "doc.txt")
	testsupport.WriteFile(t, textPath, "John ran.\n")
	testsupport.WriteFile(t, filepath.Join(dir, "doc.ann"), "T1\tPERSON 0 4\tJohn\n")

	if _, err := runCLI(t, nil, "--config", cfgPath, "convert", textPath); err != nil {
		t.Fatalf("convert: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "doc.conll"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "B-PERSON\t0\t4\tJohn\nO\t5\t8\tran\nO\t8\t9\t.\n\n"
	if string(got) != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestConvertStdinWritesStdout(t *testing.T) {
	isolateHome(t)
	cfgPath := writeTestConfig(t, t.TempDir())

	out, err := runCLI(t, strings.NewReader("John ran.\n"), "--config", cfgPath, "convert", "-")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := "O\t0\t4\tJohn\nO\t5\t8\tran\nO\t8\t9\t.\n\n"
	if out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestConvertMissingAnnotationFileFails(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	textPath := filepath.Join(dir, "alone.txt")
	testsupport.WriteFile(t, textPath, "text without annotations\n")

	if _, err := runCLI(t, nil, "--config", cfgPath, "convert", textPath); err == nil {
		t.Fatal("expected error for missing annotation file")
	}
}

func TestConvertKeepGoingContinuesPastBadFile(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	badPath := filepath.Join(dir, "bad.txt")
	testsupport.WriteFile(t, badPath, "no annotations here\n")
	goodPath := filepath.Join(dir, "good.txt")
	testsupport.WriteFile(t, goodPath, "John ran.\n")
	testsupport.WriteFile(t, filepath.Join(dir, "good.ann"), "T1\tPERSON 0 4\tJohn\n")

	_, err := runCLI(t, nil, "--config", cfgPath, "convert", "--keep-going", badPath, goodPath)
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("expected batch failure summary, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "good.conll")); statErr != nil {
		t.Fatalf("good file was not converted: %v", statErr)
	}
}

func TestConvertSingleClassOverride(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	textPath := filepath.Join(dir, "doc.txt")
	testsupport.WriteFile(t, textPath, "John ran.\n")
	testsupport.WriteFile(t, filepath.Join(dir, "doc.ann"), "T1\tPERSON 0 4\tJohn\n")

	if _, err := runCLI(t, nil, "--config", cfgPath, "convert", "--single-class", "ENTITY", textPath); err != nil {
		t.Fatalf("convert: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "doc.conll"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(got), "B-ENTITY\t") {
		t.Fatalf("output = %q, want B-ENTITY first tag", got)
	}
}
