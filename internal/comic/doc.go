// Package comic fetches single xkcd pages and turns them into Comic values.
// Fetching is fail-soft: any transport or parse problem yields placeholder
// fields instead of an error, so every caller always has something to render.
package comic
