package tui

type state int

const (
	loadingState state = iota
	errorState
	historyState
	searchState
	resultsState
	cardState
	seasonsState
	episodesState
	ratingState
	playingState
)
