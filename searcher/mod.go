// Package searcher exhaustively counts the ways a hunter can eliminate every
// prey on a board. Each count explores the tree of (prey advance, hunter
// jump) turns in parallel and memoizes completion counts by canonical state,
// so a state reached through different move orders is expanded once.
package searcher
