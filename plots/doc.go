// Package plots renders violation and statistics figures and builds their
// Finnish captions.
//
// Figures are written as PNG files with random names into the configured
// plot directory. The caption doubles as the text of the tweet the figure
// is posted with.
package plots
