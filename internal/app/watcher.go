package app

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// onListChanged handles a create/modify/delete of a list in terms_dir.
// Any change may alter resolution for several languages (a new es.txt shadows
// the fallback for es-mx), so every matcher reloads.
func (a *App) onListChanged(absPath string) {
	lang := strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))
	a.Log.Info("term list changed, reloading",
		zap.String("path", absPath),
		zap.String("language", lang))
	a.Reload()
}
