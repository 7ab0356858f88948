package hostbackend

// calculateShareRange computes (start, end) in the original data square for
// a blob at blobIndex spanning sharesLen shares, given the extended data
// square has edsSize row roots. This is spec.md §4.6 step 4's convention,
// preserved bit-for-bit from Celestia's own share-range API.
func calculateShareRange(edsSize, blobIndex, sharesLen int) (start, end int) {
	odsSize := edsSize / 2
	firstRow := blobIndex / edsSize
	start = blobIndex - firstRow*odsSize
	end = start + sharesLen
	return start, end
}
