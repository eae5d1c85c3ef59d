// Package demo drives the prototype view's simulated live transcript. It
// performs no audio work: a ticker cycles through scripted phrases and a
// per-phrase timer commits each one, mimicking partial and final recognizer
// results.
package demo
