package ui

import "sync/atomic"

type Stats struct {
	TotalComics  atomic.Int64
	Placeholders atomic.Int64
	TotalBytes   atomic.Int64
}
