// Package feed serves paginated topic feeds for the hot, latest and joined
// tabs, with ad slots interleaved per the current remote configuration.
// Each tab renders with a disjoint slot-key base so tabs mounted into a
// shared rendering tree never collide.
package feed
