// Package guard flips the runtime into test mode when imported from a test,
// so binaries that share packages with tests never start real servers.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("LEDGERLINE_TEST_MODE") == "" {
			_ = os.Setenv("LEDGERLINE_TEST_MODE", "1")
		}
	})
}
