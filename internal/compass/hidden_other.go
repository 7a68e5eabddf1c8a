//go:build !windows

package compass

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HideDir lists dir in the ".hidden" file of its parent, which file managers
// on Linux and macOS honour. Names that already start with a dot are hidden
// and left alone.
func HideDir(dir string) error {
	base := filepath.Base(dir)
	if strings.HasPrefix(base, ".") {
		return nil
	}
	listing := filepath.Join(filepath.Dir(dir), ".hidden")
	if listed(listing, base) {
		return nil
	}
	f, err := os.OpenFile(listing, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, base)
	return err
}

func listed(listing, name string) bool {
	f, err := os.Open(listing)
	if err != nil {
		return false
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == name {
			return true
		}
	}
	return false
}
