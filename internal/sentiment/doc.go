// Package sentiment turns document sentiment into one of four reaction classes.
//
// ClassOf holds the pure rule; Classifier binds it to a SentimentAnalyzer.
package sentiment
