package scriptutil

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileSys is the filesystem collaborator: direct, invariant-free
// delegations to host OS facilities, anchored to the directory the
// calling script lives in so scripts can resolve their own sidecar files.
type FileSys struct {
	topFile string
	topDir  string
}

// NewFileSys creates a FileSys anchored at scriptPath, typically the
// script's own source or executable path.
func NewFileSys(scriptPath string) *FileSys {
	if scriptPath == "" {
		scriptPath = os.Args[0]
	}
	return &FileSys{
		topFile: scriptPath,
		topDir:  filepath.Dir(scriptPath),
	}
}

func (fs *FileSys) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (fs *FileSys) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (fs *FileSys) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (fs *FileSys) IsLink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

func (fs *FileSys) Remove(path string) error {
	return os.Remove(path)
}

func (fs *FileSys) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// TempFile creates a temp file and returns its path. A non-empty dir is
// created first and the file is placed inside it.
func (fs *FileSys) TempFile(dir string) (name string, err error) {
	if dir != "" {
		err = fs.MakeDirs(dir)
		if err != nil {
			goto end
		}
	}
	{
		var f *os.File
		f, err = os.CreateTemp(dir, "")
		if err != nil {
			goto end
		}
		name = f.Name()
		err = f.Close()
	}
end:
	if err != nil {
		err = WithErr(err, "temp_dir", dir)
	}
	return name, err
}

// Copy copies src to dst, creating dst's parent directories as needed
func (fs *FileSys) Copy(src, dst string) (err error) {
	var in, out *os.File
	var info os.FileInfo

	info, err = os.Stat(src)
	if err != nil {
		goto end
	}
	err = fs.MakeDirs(filepath.Dir(dst))
	if err != nil {
		goto end
	}
	in, err = os.Open(src)
	if err != nil {
		goto end
	}
	defer func() {
		_ = in.Close()
	}()
	out, err = os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		goto end
	}
	_, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
end:
	if err != nil {
		err = WithErr(err, "src", src, "dst", dst)
	}
	return err
}

// Move moves src to dst, creating dst's parent directories as needed.
// Falls back to copy+remove when src and dst are on different filesystems.
func (fs *FileSys) Move(src, dst string) (err error) {
	err = fs.MakeDirs(filepath.Dir(dst))
	if err != nil {
		goto end
	}
	err = os.Rename(src, dst)
	if err == nil {
		goto end
	}
	err = fs.Copy(src, dst)
	if err != nil {
		goto end
	}
	err = os.Remove(src)
end:
	if err != nil {
		err = WithErr(err, "src", src, "dst", dst)
	}
	return err
}

// SudoWrite writes data to a path the current user may not write
// directly: the content is staged in a temp file and moved into place
// with sudo. The staged file is removed when the move cannot happen.
func (fs *FileSys) SudoWrite(ctx context.Context, path string, data []byte) (err error) {
	var tmp string
	var status int

	tmp, err = fs.TempFile("")
	if err != nil {
		goto end
	}
	err = os.WriteFile(tmp, data, 0o644)
	if err != nil {
		_ = os.Remove(tmp)
		goto end
	}
	status, err = Shell(ctx, "sudo mv "+JoinTokens([]string{tmp, path}))
	if err != nil {
		goto end
	}
	if status != 0 {
		_ = os.Remove(tmp)
		err = NewErr(ErrSudoWriteFailed, "status", status)
	}
end:
	if err != nil {
		err = WithErr(err, "path", path)
	}
	return err
}

// MakeDirs makes directories down the specified path, no error if they
// already exist.
func (fs *FileSys) MakeDirs(path string) error {
	return os.MkdirAll(path, 0o755)
}

// LocalPath resolves a path starting in the same directory as the script
func (fs *FileSys) LocalPath(path string) string {
	return filepath.Join(fs.topDir, path)
}

// ExpandPath expands a leading ~ and any $VAR references in path
func (fs *FileSys) ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return os.ExpandEnv(path)
}

// Join joins path elements with the OS separator
func (fs *FileSys) Join(parts ...string) string {
	return filepath.Join(parts...)
}

// ReadReplacing reads the file at path and replaces each %KEY% with its
// value from substitutions.
func (fs *FileSys) ReadReplacing(path string, substitutions map[string]string) (text string, err error) {
	var data []byte

	data, err = os.ReadFile(path)
	if err != nil {
		err = WithErr(err, "path", path)
		goto end
	}
	text = string(data)
	for key, value := range substitutions {
		text = strings.ReplaceAll(text, "%"+key+"%", value)
	}
end:
	return text, err
}
