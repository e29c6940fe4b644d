package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkKillSurge         BookmarkType = "kill_surge"
	BookmarkHerbivoreCrash    BookmarkType = "herbivore_crash"
	BookmarkCarnivoreRecovery BookmarkType = "carnivore_recovery"
	BookmarkExtinction        BookmarkType = "extinction"
	BookmarkStableCoexistence BookmarkType = "stable_coexistence"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType
	Tick        int32
	Description string
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// stableWindows is how many calm windows in a row make a stable ecosystem.
const stableWindows = 5

// BookmarkDetector detects interesting moments from a stream of windows.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentCarnMin      int
	recentHerbPeak     int
	stableWindowsCount int
	extinct            [2]bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < stableWindows {
		historySize = stableWindows
	}
	return &BookmarkDetector{
		history:       make([]WindowStats, historySize),
		historySize:   historySize,
		recentCarnMin: -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	bookmarks = append(bookmarks, bd.checkExtinction(stats)...)

	if bd.historyFull || bd.historyIdx > 0 {
		checks := []func(WindowStats) *Bookmark{
			bd.checkKillSurge,
			bd.checkHerbivoreCrash,
			bd.checkCarnivoreRecovery,
			bd.checkStableCoexistence,
		}
		for _, check := range checks {
			if b := check(stats); b != nil {
				bookmarks = append(bookmarks, *b)
			}
		}
	}

	bd.addToHistory(stats)

	if bd.recentCarnMin < 0 || stats.Carnivores < bd.recentCarnMin {
		bd.recentCarnMin = stats.Carnivores
	}
	if stats.Herbivores > bd.recentHerbPeak {
		bd.recentHerbPeak = stats.Herbivores
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	var ordered []WindowStats
	if bd.historyFull {
		ordered = append(ordered, bd.history[bd.historyIdx:]...)
	}
	ordered = append(ordered, bd.history[:bd.historyIdx]...)
	if len(ordered) > n {
		ordered = ordered[len(ordered)-n:]
	}
	return ordered
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	pops := [2]int{stats.Herbivores, stats.Carnivores}
	names := [2]string{"herbivores", "carnivores"}
	for i, pop := range pops {
		if pop > 0 {
			bd.extinct[i] = false
			continue
		}
		if bd.extinct[i] || !(bd.historyFull || bd.historyIdx > 0) {
			continue
		}
		bd.extinct[i] = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkExtinction,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%s went extinct", names[i]),
		})
	}
	return bookmarks
}

func (bd *BookmarkDetector) checkKillSurge(stats WindowStats) *Bookmark {
	history := bd.recent(bd.historySize)
	if len(history) < 3 {
		return nil
	}

	kills := make([]float64, len(history))
	for i, h := range history {
		kills[i] = float64(h.Kills)
	}
	avg := stat.Mean(kills, nil)
	if avg == 0 {
		return nil
	}

	if float64(stats.Kills) > avg*2 && stats.Kills >= 3 {
		return &Bookmark{
			Type:        BookmarkKillSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d kills is %.1fx average (%.1f)", stats.Kills, float64(stats.Kills)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkHerbivoreCrash(stats WindowStats) *Bookmark {
	if bd.recentHerbPeak == 0 {
		return nil
	}

	drop := 1 - float64(stats.Herbivores)/float64(bd.recentHerbPeak)
	if drop > 0.30 && stats.Herbivores <= bd.recentHerbPeak-3 {
		oldPeak := bd.recentHerbPeak
		bd.recentHerbPeak = stats.Herbivores
		return &Bookmark{
			Type:        BookmarkHerbivoreCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Herbivores crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Herbivores),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkCarnivoreRecovery(stats WindowStats) *Bookmark {
	if bd.recentCarnMin <= 0 || bd.recentCarnMin > 2 {
		return nil
	}

	if stats.Carnivores >= bd.recentCarnMin*3 && stats.Carnivores >= 4 {
		oldMin := bd.recentCarnMin
		bd.recentCarnMin = stats.Carnivores
		return &Bookmark{
			Type:        BookmarkCarnivoreRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Carnivores recovered from %d to %d", oldMin, stats.Carnivores),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStableCoexistence(stats WindowStats) *Bookmark {
	if stats.Herbivores < 3 || stats.Carnivores < 2 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.recent(stableWindows - 1)
	if len(history) < stableWindows-1 {
		return nil
	}

	herbs := make([]float64, 0, stableWindows)
	carns := make([]float64, 0, stableWindows)
	for _, h := range append(history, stats) {
		herbs = append(herbs, float64(h.Herbivores))
		carns = append(carns, float64(h.Carnivores))
	}

	if calm(herbs) && calm(carns) {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	// Trigger once per calm stretch
	if bd.stableWindowsCount == stableWindows {
		return &Bookmark{
			Type:        BookmarkStableCoexistence,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d herbivores and %d carnivores stable over %d windows", stats.Herbivores, stats.Carnivores, stableWindows),
		}
	}
	return nil
}

// calm reports a coefficient of variation under 20%.
func calm(pops []float64) bool {
	mean, variance := stat.PopMeanVariance(pops, nil)
	if mean == 0 {
		return false
	}
	return variance/(mean*mean) < 0.04
}
