package adapters

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"stock_dashboard/internal/feature/snapshots/domain/entity"
)

type watchlistFile struct {
	Watchlist []struct {
		Name   string `yaml:"name"`
		Symbol string `yaml:"symbol"`
		Kind   string `yaml:"kind"`
	} `yaml:"watchlist"`
}

// LoadWatchlistFile はYAMLファイルから初期ウォッチリストを読み込みます。
//
//	watchlist:
//	  - name: NIFTY 50
//	    symbol: NIFTY 50
//	    kind: index
//	  - name: Reliance Industries
//	    symbol: RELIANCE
//
// kindを省略した項目はequityとして扱います。シンボルは大文字化し、重複は最初の1件だけを残します。
func LoadWatchlistFile(path string) ([]entity.WatchlistEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wf watchlistFile
	if err := yaml.Unmarshal(b, &wf); err != nil {
		return nil, fmt.Errorf("parse watchlist %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(wf.Watchlist))
	out := make([]entity.WatchlistEntry, 0, len(wf.Watchlist))
	for _, it := range wf.Watchlist {
		sym := strings.ToUpper(strings.TrimSpace(it.Symbol))
		if sym == "" {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}

		name := strings.TrimSpace(it.Name)
		if name == "" {
			name = sym
		}
		kind := entity.Kind(strings.ToLower(strings.TrimSpace(it.Kind)))
		if kind == "" {
			kind = entity.KindEquity
		}
		if !kind.Valid() {
			return nil, fmt.Errorf("watchlist %s: unknown kind %q for %s", path, it.Kind, sym)
		}
		out = append(out, entity.WatchlistEntry{Name: name, Symbol: sym, Kind: kind})
	}
	if len(out) == 0 {
		return nil, errors.New("no symbols found in watchlist")
	}
	return out, nil
}
