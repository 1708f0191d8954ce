// Package table is a responsive data table that never owns its data.
//
// The owner supplies columns, the current page of rows, its sort and pagination
// state, and the loading/error flags. Build turns those into a View: a skeleton,
// an error or empty state, a header-and-rows table when the viewport is wider
// than the breakpoint, or one card per row when it is not. User intent flows
// back through ActivateHeader, PressPrevious, PressNext and PressRetry, which
// call the owner's callbacks and never touch Props.
package table
