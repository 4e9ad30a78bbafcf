package ui

import "time"

const (
	// PageSize is how many recipes a view shows before "Ver más".
	PageSize = 6

	// LayoutCompactWidth is the width below which the list drops the
	// metadata column.
	LayoutCompactWidth = 90

	// LoadingTick paces the loading indicator and the store refresh while
	// a fetch is in flight.
	LoadingTick = 250 * time.Millisecond

	// chromeHeight is the number of rows used by header, category bar,
	// command bar and footer.
	chromeHeight = 4
)

// RandomBatch is how many random recipes the reload key asks for.
const RandomBatch = 12
