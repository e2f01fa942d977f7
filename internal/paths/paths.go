// Package paths locates the toolkit installation and decides where figures
// are written.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/skirt-tools/cutviz/internal/domain"
)

// HomeEnv overrides the detected installation directory.
const HomeEnv = "CUTVIZ_HOME"

// executable is replaced in tests.
var executable = os.Executable

// Root returns the absolute path of the toolkit installation directory.
// CUTVIZ_HOME wins when set; otherwise this is the directory holding the
// running executable, one level up when that directory is named "bin".
func Root() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return Absolute(home)
	}
	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	dir := filepath.Dir(exe)
	if filepath.Base(dir) == "bin" {
		dir = filepath.Dir(dir)
	}
	return filepath.Abs(dir)
}

// Absolute expands a leading "~" to the user's home directory and makes the
// path absolute relative to the working directory.
func Absolute(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %s: %w", p, err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return filepath.Abs(p)
}

// SaveOptions overrides parts of a figure's default save path.
type SaveOptions struct {
	// OutDirPath replaces the directory of the default path.
	OutDirPath string
	// OutFileName replaces the file name of the default path.
	OutFileName string
	// OutFilePath replaces the whole path; the other fields are ignored.
	OutFilePath string
}

// SavePath returns the path a figure should be saved to.
// The suffix of the result must be one of suffixes (compared case-insensitively).
func SavePath(defFilePath string, suffixes []string, opts SaveOptions) (string, error) {
	var (
		p   string
		err error
	)
	if opts.OutFilePath != "" {
		p, err = Absolute(opts.OutFilePath)
		if err != nil {
			return "", err
		}
	} else {
		dir := filepath.Dir(defFilePath)
		if opts.OutDirPath != "" {
			if dir, err = Absolute(opts.OutDirPath); err != nil {
				return "", err
			}
		}
		name := filepath.Base(defFilePath)
		if opts.OutFileName != "" {
			name = opts.OutFileName
		}
		p = filepath.Join(dir, name)
	}

	ext := strings.ToLower(filepath.Ext(p))
	for _, s := range suffixes {
		if strings.ToLower(s) == ext {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", domain.ErrUnsupportedSuffix, ext, strings.Join(suffixes, ", "))
}

var interactiveDefault atomic.Bool

// SetInteractive sets the process-wide interactive default.
func SetInteractive(on bool) {
	interactiveDefault.Store(on)
}

// Interactive returns *flag when set, otherwise the process-wide default.
// In interactive mode figures are handed back to the caller instead of saved.
func Interactive(flag *bool) bool {
	if flag != nil {
		return *flag
	}
	return interactiveDefault.Load()
}
