package main

import (
	"os"
	"path/filepath"
	"testing"

	"annconv/internal/testsupport"
)

func TestStandoffWritesSegmentPair(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	conllDir := filepath.Join(dir, "conll")
	tokDir := filepath.Join(dir, "tok")
	outDir := filepath.Join(dir, "out")

	testsupport.WriteFile(t, filepath.Join(conllDir, "x.conll"),
		"#begin document (x); part 000\n"+
			"_\t_\t_\tw1\tNN[pos]\n"+
			"_\t_\t_\tw2\tVB[pos]\n"+
			"\n"+
			"#end document\n")
	testsupport.WriteFile(t, filepath.Join(tokDir, "x.tok"), "key|w1 w2\n")

	if _, err := runCLI(t, nil, "--config", cfgPath, "standoff", conllDir, tokDir, outDir); err != nil {
		t.Fatalf("standoff: %v", err)
	}

	ann, err := os.ReadFile(filepath.Join(outDir, "x_01.ann"))
	if err != nil {
		t.Fatalf("read annotations: %v", err)
	}
	wantAnn := "T1\tNN 4 6\tw1\nT2\tVB 7 9\tw2\n"
	if string(ann) != wantAnn {
		t.Fatalf("annotations = %q, want %q", ann, wantAnn)
	}

	txt, err := os.ReadFile(filepath.Join(outDir, "x_01.txt"))
	if err != nil {
		t.Fatalf("read text: %v", err)
	}
	if string(txt) != "key|w1 w2\n" {
		t.Fatalf("text = %q", txt)
	}
}

func TestStandoffSegmentBudgetRollsFiles(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	conllDir := filepath.Join(dir, "conll")
	tokDir := filepath.Join(dir, "tok")
	outDir := filepath.Join(dir, "out")

	container := "#begin document (y); part 000\n" +
		"_\t_\t_\taa\tNN[pos]\n" +
		"\n" +
		"_\t_\t_\tbb\tNN[pos]\n" +
		"\n" +
		"#end document\n"
	testsupport.WriteFile(t, filepath.Join(conllDir, "y.conll"), container)
	testsupport.WriteFile(t, filepath.Join(tokDir, "y.tok"), "k1|aa\nk2|bb\n")

	if _, err := runCLI(t, nil, "--config", cfgPath, "standoff", "--segment-entities", "1", conllDir, tokDir, outDir); err != nil {
		t.Fatalf("standoff: %v", err)
	}

	for _, name := range []string{"y_01.ann", "y_01.txt", "y_02.ann", "y_02.txt"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("expected segment file %s: %v", name, err)
		}
	}
}

func TestStandoffTrailingTokenizedSentencesFail(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	conllDir := filepath.Join(dir, "conll")
	tokDir := filepath.Join(dir, "tok")
	outDir := filepath.Join(dir, "out")

	testsupport.WriteFile(t, filepath.Join(conllDir, "x.conll"),
		"#begin document (x); part 000\n"+
			"_\t_\t_\tw1\tNN[pos]\n"+
			"\n"+
			"#end document\n")
	// Second line has no covering document sentence.
	testsupport.WriteFile(t, filepath.Join(tokDir, "x.tok"), "k1|w1\nk2|w2\n")

	if _, err := runCLI(t, nil, "--config", cfgPath, "standoff", conllDir, tokDir, outDir); err == nil {
		t.Fatal("expected sentence count mismatch error")
	}
}

func TestStandoffMismatchedTokensFails(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	conllDir := filepath.Join(dir, "conll")
	tokDir := filepath.Join(dir, "tok")
	outDir := filepath.Join(dir, "out")

	testsupport.WriteFile(t, filepath.Join(conllDir, "z.conll"),
		"#begin document (z); part 000\n"+
			"_\t_\t_\tw1\tNN[pos]\n"+
			"\n"+
			"#end document\n")
	testsupport.WriteFile(t, filepath.Join(tokDir, "z.tok"), "key|w1 extra\n")

	if _, err := runCLI(t, nil, "--config", cfgPath, "standoff", conllDir, tokDir, outDir); err == nil {
		t.Fatal("expected token count mismatch error")
	}
}
