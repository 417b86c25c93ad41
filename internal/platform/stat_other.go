//go:build !linux && !darwin

package platform

import (
	"io/fs"

	"github.com/meigma/gitindex/stale"
)

func sysStat(fs.FileInfo) (stale.Stat, bool) {
	return stale.Stat{}, false
}
