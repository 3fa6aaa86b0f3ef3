// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package semester derives academic term codes such as "2024S" and "2023W".
package semester

import (
	"fmt"
	"time"

	"github.com/pdiddy/sitefetch/pkg/types"
)

// Term is the season of an academic term.
type Term string

const (
	Summer Term = "S"
	Winter Term = "W"
)

// Code identifies one academic term.
type Code struct {
	Year int
	Term Term
}

func (c Code) String() string {
	return fmt.Sprintf("%d%s", c.Year, c.Term)
}

// Previous returns the term immediately before c: the winter term of the
// previous year precedes a summer term, and the summer term of the same
// year precedes a winter term.
func (c Code) Previous() Code {
	if c.Term == Winter {
		return Code{Year: c.Year, Term: Summer}
	}
	return Code{Year: c.Year - 1, Term: Winter}
}

// At returns the term containing at. Months before cfg.SummerStart belong
// to the winter term that began in the previous year; months from
// cfg.WinterStart on belong to the winter term of the current year.
// Zero thresholds fall back to March and October.
func At(at time.Time, cfg types.SemesterConfig) Code {
	summer, winter := cfg.SummerStart, cfg.WinterStart
	if summer == 0 {
		summer = 3
	}
	if winter == 0 {
		winter = 10
	}

	month := int(at.Month())
	switch {
	case month < summer:
		return Code{Year: at.Year() - 1, Term: Winter}
	case month >= winter:
		return Code{Year: at.Year(), Term: Winter}
	default:
		return Code{Year: at.Year(), Term: Summer}
	}
}

// CurrentAndPrevious returns the codes of the term containing at and of
// the term before it.
func CurrentAndPrevious(at time.Time, cfg types.SemesterConfig) (current, previous string) {
	c := At(at, cfg)
	return c.String(), c.Previous().String()
}
