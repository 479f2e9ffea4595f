package scriptutil

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"hash"
	"os"
	"runtime"
	"strings"
	"time"
)

var ErrUnknownSystem = errors.New("unknown system type")
var ErrInvalidDateSpec = errors.New("invalid date+time spec; use 'YYYY-MM-DD hh:mm:ss[.frac]'")

// Util is the clock/hash utility collaborator
type Util struct{}

func NewUtil() *Util {
	return &Util{}
}

// Now returns the current date and time
func (u *Util) Now() time.Time {
	return time.Now()
}

var dateSpecLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// ParseDate produces a time from a 'YYYY-MM-DD hh:mm:ss[.frac]' spec,
// with either a space or a 'T' separating date and time.
func (u *Util) ParseDate(spec string) (t time.Time, err error) {
	for _, layout := range dateSpecLayouts {
		t, err = time.Parse(layout, spec)
		if err == nil {
			goto end
		}
	}
	err = NewErr(ErrInvalidDateSpec, "spec", spec)
end:
	return t, err
}

// Hash produces a hex sha1 of the supplied data. When data is nil a basic
// hash derived from the current time is produced instead.
func (u *Util) Hash(data []byte) string {
	return u.HashWith(sha1.New, data)
}

// HashWith hashes data with the supplied algorithm constructor
func (u *Util) HashWith(algo func() hash.Hash, data []byte) string {
	h := algo()
	if data == nil {
		data = []byte(u.Now().Format(time.RFC3339Nano))
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Sleep pauses for the given duration
func (u *Util) Sleep(d time.Duration) {
	time.Sleep(d)
}

// OSInfo returns the platform, operating system name and version, e.g.
// ("linux", "ubuntu", "24.04"). Unix-likes read /etc/os-release.
func (u *Util) OSInfo() (platform, name, version string, err error) {
	platform = runtime.GOOS

	data, readErr := os.ReadFile("/etc/os-release")
	if readErr != nil {
		err = NewErr(ErrUnknownSystem, "platform", platform)
		goto end
	}
	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "ID":
			name = value
		case "VERSION_ID":
			version = value
		}
	}
end:
	return platform, name, version, err
}
