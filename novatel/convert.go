package novatel

// UTCFloatToSeconds converts an hhmmss.ss UTC time, as found in GPGGA and friends, to seconds
// since midnight.
func UTCFloatToSeconds(utc float64) float64 {
	whole := uint32(utc)
	hours := whole / 10000
	minutes := (whole - hours*10000) / 100
	seconds := utc - float64(hours*10000+minutes*100)
	return seconds + float64(hours*3600+minutes*60)
}

// DMSToDegrees converts an unsigned dddmm.mmmm angle to decimal degrees.  The hemisphere is
// carried in a separate field and is not applied here.
func DMSToDegrees(dms float64) float64 {
	whole := uint32(dms) / 100
	minutes := dms - float64(whole*100)
	return float64(whole) + minutes/60
}
