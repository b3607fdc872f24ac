// Package selection parses continuum selection ("cont.dat") files.
//
// A selection file lists, one per line, the frequency ranges that contain
// line emission and were therefore excluded from continuum imaging:
//
//	Field: G010.62
//
//	SpectralWindow: 25
//	93.103460508800~93.120552325700GHz LSRK
//	93.155000000000~93.180000000000GHz LSRK
//
// Only lines carrying the run's reference frame tag are honoured. The first
// whitespace-delimited token of such a line is a range expression
// "<low>~<high><unit>", where the unit (and optionally the frame tag) is
// attached to the high value and the low value inherits that unit.
//
// Eligible tokens travel between stages as a single ";"-joined string, which
// [Parse] turns into a [Selection] of validated intervals.
package selection
