package cli

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/unshred/pkg/errors"
	"github.com/matzehuels/unshred/pkg/imageio"
)

func gradientImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 10))
	for x := range 64 {
		for y := range 10 {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(255 - 4*x), B: uint8(4 * x), A: 255})
		}
	}
	return img
}

// run executes the CLI with args and returns what it printed to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestShredThenReconstruct(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	orig := filepath.Join(dir, "orig.png")
	if err := imageio.Save(gradientImage(), orig); err != nil {
		t.Fatal(err)
	}
	shredded := filepath.Join(dir, "shredded.png")
	restored := filepath.Join(dir, "restored.png")

	out, err := run(t, "shred", orig, "-o", shredded, "--width", "8", "--seed", "5")
	if err != nil {
		t.Fatalf("shred: %v", err)
	}
	if !strings.Contains(out, "8 strips") {
		t.Errorf("shred output %q", out)
	}

	out, err = run(t, "width", shredded)
	if err != nil {
		t.Fatalf("width: %v", err)
	}
	if !strings.Contains(out, "Width") || !strings.Contains(out, "8") {
		t.Errorf("width output %q", out)
	}

	out, err = run(t, shredded, "-o", restored, "--print-order")
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if !strings.Contains(out, "Reconstructed") || !strings.Contains(out, "Order") {
		t.Errorf("reconstruct output %q", out)
	}

	got, err := imageio.Open(restored)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Pix, gradientImage().Pix) {
		t.Error("restored image differs from original")
	}
}

func TestReconstructIncompleteExitCode(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()

	img := image.NewNRGBA(image.Rect(0, 0, 64, 10))
	for x := range 64 {
		for y := range 10 {
			c := color.NRGBA{B: 255, A: 255}
			if x >= 32 {
				c = color.NRGBA{R: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	in := filepath.Join(dir, "halves.png")
	if err := imageio.Save(img, in); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "out.png")

	out, err := run(t, in, "-o", outPath, "--max-rounds", "1")
	if ExitCode(err) != ExitIncomplete {
		t.Fatalf("ExitCode(%v) = %d, want %d", err, ExitCode(err), ExitIncomplete)
	}
	if !strings.Contains(out, "incomplete") {
		t.Errorf("output %q should report incompleteness", out)
	}
	if _, err := imageio.Open(outPath); err != nil {
		t.Errorf("best-effort image not written: %v", err)
	}
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	if err := imageio.Save(gradientImage(), in); err != nil {
		t.Fatal(err)
	}
	cfg := writeFile(t, dir, "cfg.toml", "[match]\nshred_width = 7\n")

	_, err := run(t, in, "-o", filepath.Join(dir, "a.png"), "--config", cfg)
	if !errors.Is(err, errors.ErrCodeInvalidShredGeometry) {
		t.Errorf("config width 7: err = %v", err)
	}

	_, err = run(t, in, "-o", filepath.Join(dir, "b.png"), "--config", cfg, "--width", "32")
	if err != nil {
		t.Errorf("flag should override config: %v", err)
	}
}

func TestReconstructMissingInput(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	_, err := run(t, filepath.Join(t.TempDir(), "nope.png"), "-o", filepath.Join(t.TempDir(), "o.png"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v", err)
	}
	if ExitCode(err) != ExitFailure {
		t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitFailure)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{context.Canceled, ExitInterrupted},
		{fmt.Errorf("decode: %w", context.Canceled), ExitInterrupted},
		{errors.New(errors.ErrCodeReconstructionIncomplete, "2 sections"), ExitIncomplete},
		{fmt.Errorf("reconstruct: %w", errors.New(errors.ErrCodeReconstructionIncomplete, "x")), ExitIncomplete},
		{errors.New(errors.ErrCodeShredWidthUndetermined, "x"), ExitFailure},
		{io.EOF, ExitFailure},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := run(t, "completion", shell)
		if err != nil {
			t.Fatalf("%s: %v", shell, err)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("%s completion does not mention %s", shell, appName)
		}
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "version") {
		t.Errorf("version output %q", out)
	}
}
