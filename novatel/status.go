package novatel

// ReceiverStatus is the receiver status word reported in the header of every log and in
// RXSTATUS.  AntennaPowered and ClockSteeringStatusEnabled are true when their bit is clear.
type ReceiverStatus struct {
	OriginalStatusCode uint32 `json:"original_status_code"`

	ErrorFlag                  bool `json:"error_flag"`
	TemperatureFlag            bool `json:"temperature_flag"`
	VoltageSupplyFlag          bool `json:"voltage_supply_flag"`
	AntennaPowered             bool `json:"antenna_powered"`
	AntennaIsOpen              bool `json:"antenna_is_open"`
	AntennaIsShorted           bool `json:"antenna_is_shorted"`
	CPUOverloadFlag            bool `json:"cpu_overload_flag"`
	COM1BufferOverrun          bool `json:"com1_buffer_overrun"`
	COM2BufferOverrun          bool `json:"com2_buffer_overrun"`
	COM3BufferOverrun          bool `json:"com3_buffer_overrun"`
	USBBufferOverrun           bool `json:"usb_buffer_overrun"`
	RF1AGCFlag                 bool `json:"rf1_agc_flag"`
	RF2AGCFlag                 bool `json:"rf2_agc_flag"`
	AlmanacFlag                bool `json:"almanac_flag"`
	PositionSolutionFlag       bool `json:"position_solution_flag"`
	PositionFixedFlag          bool `json:"position_fixed_flag"`
	ClockSteeringStatusEnabled bool `json:"clock_steering_status_enabled"`
	ClockModelFlag             bool `json:"clock_model_flag"`
	OEMVExternalOscillatorFlag bool `json:"oemv_external_oscillator_flag"`
	SoftwareResourceFlag       bool `json:"software_resource_flag"`
	Aux3StatusEventFlag        bool `json:"aux3_status_event_flag"`
	Aux2StatusEventFlag        bool `json:"aux2_status_event_flag"`
	Aux1StatusEventFlag        bool `json:"aux1_status_event_flag"`
}

// bit reports whether mask has any of the bits in def set, flipped when inverted is true.
func bit(mask, def uint32, inverted bool) bool {
	return (mask&def != 0) != inverted
}

// receiverStatusBits is the published bit assignment of the receiver status word.  Bits 4,
// 12-14, 16 and 25-28 are reserved.
var receiverStatusBits = []struct {
	mask     uint32
	inverted bool // set by a clear bit
	field    func(*ReceiverStatus) *bool
}{
	{0x00000001, false, func(r *ReceiverStatus) *bool { return &r.ErrorFlag }},
	{0x00000002, false, func(r *ReceiverStatus) *bool { return &r.TemperatureFlag }},
	{0x00000004, false, func(r *ReceiverStatus) *bool { return &r.VoltageSupplyFlag }},
	{0x00000008, true, func(r *ReceiverStatus) *bool { return &r.AntennaPowered }},
	{0x00000020, false, func(r *ReceiverStatus) *bool { return &r.AntennaIsOpen }},
	{0x00000040, false, func(r *ReceiverStatus) *bool { return &r.AntennaIsShorted }},
	{0x00000080, false, func(r *ReceiverStatus) *bool { return &r.CPUOverloadFlag }},
	{0x00000100, false, func(r *ReceiverStatus) *bool { return &r.COM1BufferOverrun }},
	{0x00000200, false, func(r *ReceiverStatus) *bool { return &r.COM2BufferOverrun }},
	{0x00000400, false, func(r *ReceiverStatus) *bool { return &r.COM3BufferOverrun }},
	{0x00000800, false, func(r *ReceiverStatus) *bool { return &r.USBBufferOverrun }},
	{0x00008000, false, func(r *ReceiverStatus) *bool { return &r.RF1AGCFlag }},
	{0x00020000, false, func(r *ReceiverStatus) *bool { return &r.RF2AGCFlag }},
	{0x00040000, false, func(r *ReceiverStatus) *bool { return &r.AlmanacFlag }},
	{0x00080000, false, func(r *ReceiverStatus) *bool { return &r.PositionSolutionFlag }},
	{0x00100000, false, func(r *ReceiverStatus) *bool { return &r.PositionFixedFlag }},
	{0x00200000, true, func(r *ReceiverStatus) *bool { return &r.ClockSteeringStatusEnabled }},
	{0x00400000, false, func(r *ReceiverStatus) *bool { return &r.ClockModelFlag }},
	{0x00800000, false, func(r *ReceiverStatus) *bool { return &r.OEMVExternalOscillatorFlag }},
	{0x01000000, false, func(r *ReceiverStatus) *bool { return &r.SoftwareResourceFlag }},
	{0x20000000, false, func(r *ReceiverStatus) *bool { return &r.Aux3StatusEventFlag }},
	{0x40000000, false, func(r *ReceiverStatus) *bool { return &r.Aux2StatusEventFlag }},
	{0x80000000, false, func(r *ReceiverStatus) *bool { return &r.Aux1StatusEventFlag }},
}

// DecodeReceiverStatus decodes a receiver status word.  Bits without an assigned meaning are
// ignored.
func DecodeReceiverStatus(mask uint32) ReceiverStatus {
	r := ReceiverStatus{OriginalStatusCode: mask}
	for _, def := range receiverStatusBits {
		*def.field(&r) = bit(mask, def.mask, def.inverted)
	}
	return r
}

// IonoCorrection is the pseudorange ionospheric correction type in bits 1-3 of the extended
// solution status.
type IonoCorrection uint8

const (
	IonoUnknown IonoCorrection = iota
	IonoKlobucharBroadcast
	IonoSBASBroadcast
	IonoMultiFrequencyComputed
	IonoPSRDiffCorrection
	IonoNovatelBlended
)

func (c IonoCorrection) String() string {
	switch c {
	case IonoKlobucharBroadcast:
		return "Klobuchar Broadcast"
	case IonoSBASBroadcast:
		return "SBAS Broadcast"
	case IonoMultiFrequencyComputed:
		return "Multi-frequency Computed"
	case IonoPSRDiffCorrection:
		return "PSRDiff Correction"
	case IonoNovatelBlended:
		return "Novatel Blended Iono Value"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the correction type as its name.
func (c IonoCorrection) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// ExtendedSolutionStatus is the "ext sol stat" field of BESTPOS and friends.  The JSON name of
// the iono correction keeps the driver's historical spelling, which consumers match on.
type ExtendedSolutionStatus struct {
	OriginalMask              uint32         `json:"original_mask"`
	AdvanceRTKVerified        bool           `json:"advance_rtk_verified"`
	PseudorangeIonoCorrection IonoCorrection `json:"psuedorange_iono_correction"`
}

// DecodeExtendedSolutionStatus decodes an extended solution status word.
func DecodeExtendedSolutionStatus(mask uint32) ExtendedSolutionStatus {
	return ExtendedSolutionStatus{
		OriginalMask:              mask,
		AdvanceRTKVerified:        mask&0x01 != 0,
		PseudorangeIonoCorrection: IonoCorrection((mask & 0x0e) >> 1),
	}
}

// SignalMask is the "GPS and GLONASS signals used" mask of BESTPOS and friends.
type SignalMask struct {
	OriginalMask            uint32 `json:"original_mask"`
	GPSL1UsedInSolution     bool   `json:"gps_L1_used_in_solution"`
	GPSL2UsedInSolution     bool   `json:"gps_L2_used_in_solution"`
	GPSL3UsedInSolution     bool   `json:"gps_L3_used_in_solution"`
	GLONASSL1UsedInSolution bool   `json:"glonass_L1_used_in_solution"`
	GLONASSL2UsedInSolution bool   `json:"glonass_L2_used_in_solution"`
}

var signalMaskBits = []struct {
	mask  uint32
	field func(*SignalMask) *bool
}{
	{0x01, func(r *SignalMask) *bool { return &r.GPSL1UsedInSolution }},
	{0x02, func(r *SignalMask) *bool { return &r.GPSL2UsedInSolution }},
	{0x04, func(r *SignalMask) *bool { return &r.GPSL3UsedInSolution }},
	{0x10, func(r *SignalMask) *bool { return &r.GLONASSL1UsedInSolution }},
	{0x20, func(r *SignalMask) *bool { return &r.GLONASSL2UsedInSolution }},
}

// DecodeSignalMask decodes a signals-used mask.
func DecodeSignalMask(mask uint32) SignalMask {
	m := SignalMask{OriginalMask: mask}
	for _, def := range signalMaskBits {
		*def.field(&m) = bit(mask, def.mask, false)
	}
	return m
}
