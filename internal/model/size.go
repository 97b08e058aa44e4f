package model

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders bytes on a base-1024 ladder with two decimals.
func FormatSize(bytes int64) string {
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", size, sizeUnits[unit])
}

type SizeGroup int

const (
	SizeSmall SizeGroup = iota
	SizeMedium
	SizeLarge
	SizeVeryLarge
)

const (
	mib = 1024 * 1024
	gib = 1024 * mib
)

func GroupOf(size int64) SizeGroup {
	switch {
	case size >= gib:
		return SizeVeryLarge
	case size >= 100*mib:
		return SizeLarge
	case size >= 10*mib:
		return SizeMedium
	default:
		return SizeSmall
	}
}

func (g SizeGroup) Label() string {
	switch g {
	case SizeVeryLarge:
		return "very large (>1GB)"
	case SizeLarge:
		return "large (100MB-1GB)"
	case SizeMedium:
		return "medium (10MB-100MB)"
	default:
		return "small (<10MB)"
	}
}

// GroupBySize buckets targets by SizeGroup, keeping input order within a bucket.
func GroupBySize(targets []Target) map[SizeGroup][]Target {
	groups := make(map[SizeGroup][]Target, 4)
	for _, t := range targets {
		g := GroupOf(t.Size)
		groups[g] = append(groups[g], t)
	}
	return groups
}

// SizeGroupsDescending lists groups in display order.
var SizeGroupsDescending = []SizeGroup{SizeVeryLarge, SizeLarge, SizeMedium, SizeSmall}
