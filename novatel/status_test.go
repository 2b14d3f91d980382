package novatel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReceiverStatus(t *testing.T) {
	testData := []struct {
		name string
		mask uint32
		want ReceiverStatus
	}{
		{
			name: "zero",
			mask: 0,
			want: ReceiverStatus{AntennaPowered: true, ClockSteeringStatusEnabled: true},
		},
		{
			name: "error flag",
			mask: 0x00000001,
			want: ReceiverStatus{
				OriginalStatusCode:         0x00000001,
				ErrorFlag:                  true,
				AntennaPowered:             true,
				ClockSteeringStatusEnabled: true,
			},
		},
		{
			name: "antenna unpowered and clock steering disabled",
			mask: 0x00200008,
			want: ReceiverStatus{OriginalStatusCode: 0x00200008},
		},
		{
			name: "reserved bits only",
			mask: 0x1e017010,
			want: ReceiverStatus{
				OriginalStatusCode:         0x1e017010,
				AntennaPowered:             true,
				ClockSteeringStatusEnabled: true,
			},
		},
		{
			name: "open antenna, almanac and position not valid",
			mask: 0x000c0020,
			want: ReceiverStatus{
				OriginalStatusCode:         0x000c0020,
				AntennaPowered:             true,
				AntennaIsOpen:              true,
				AlmanacFlag:                true,
				PositionSolutionFlag:       true,
				ClockSteeringStatusEnabled: true,
			},
		},
		{
			name: "all bits",
			mask: 0xffffffff,
			want: ReceiverStatus{
				OriginalStatusCode:         0xffffffff,
				ErrorFlag:                  true,
				TemperatureFlag:            true,
				VoltageSupplyFlag:          true,
				AntennaIsOpen:              true,
				AntennaIsShorted:           true,
				CPUOverloadFlag:            true,
				COM1BufferOverrun:          true,
				COM2BufferOverrun:          true,
				COM3BufferOverrun:          true,
				USBBufferOverrun:           true,
				RF1AGCFlag:                 true,
				RF2AGCFlag:                 true,
				AlmanacFlag:                true,
				PositionSolutionFlag:       true,
				PositionFixedFlag:          true,
				ClockModelFlag:             true,
				OEMVExternalOscillatorFlag: true,
				SoftwareResourceFlag:       true,
				Aux3StatusEventFlag:        true,
				Aux2StatusEventFlag:        true,
				Aux1StatusEventFlag:        true,
			},
		},
	}

	for _, test := range testData {
		t.Run(test.name, func(t *testing.T) {
			got := DecodeReceiverStatus(test.mask)
			assert.Equal(t, test.want, got)
			assert.Equal(t, got, DecodeReceiverStatus(test.mask), "second decode")
		})
	}
}

func TestReceiverStatusBits(t *testing.T) {
	// Each assigned bit changes exactly one field.
	base := DecodeReceiverStatus(0)
	for _, def := range receiverStatusBits {
		r := DecodeReceiverStatus(def.mask)
		assert.NotEqual(t, *def.field(&base), *def.field(&r), "bit %#08x", def.mask)
		*def.field(&r) = *def.field(&base)
		r.OriginalStatusCode = 0
		assert.Equal(t, base, r, "bit %#08x changed more than one field", def.mask)
	}
	assert.Len(t, receiverStatusBits, 23)
}

func TestReceiverStatusJSON(t *testing.T) {
	b, err := json.Marshal(DecodeReceiverStatus(0x80000001))
	require.NoError(t, err)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Len(t, got, 24)
	assert.Equal(t, float64(0x80000001), got["original_status_code"])
	assert.Equal(t, true, got["error_flag"])
	assert.Equal(t, true, got["aux1_status_event_flag"])
	assert.Equal(t, true, got["antenna_powered"])
	assert.Equal(t, false, got["com1_buffer_overrun"])
}

func TestDecodeExtendedSolutionStatus(t *testing.T) {
	testData := []struct {
		mask     uint32
		verified bool
		want     IonoCorrection
		name     string
	}{
		{0x00, false, IonoUnknown, "Unknown"},
		{0x01, true, IonoUnknown, "Unknown"},
		{0x03, true, IonoKlobucharBroadcast, "Klobuchar Broadcast"},
		{0x04, false, IonoSBASBroadcast, "SBAS Broadcast"},
		{0x06, false, IonoMultiFrequencyComputed, "Multi-frequency Computed"},
		{0x08, false, IonoPSRDiffCorrection, "PSRDiff Correction"},
		{0x0b, true, IonoNovatelBlended, "Novatel Blended Iono Value"},
		{0x0c, false, IonoCorrection(6), "Unknown"},
		{0x0e, false, IonoCorrection(7), "Unknown"},
		{0xfffffff0, false, IonoUnknown, "Unknown"},
	}

	for _, test := range testData {
		got := DecodeExtendedSolutionStatus(test.mask)
		assert.Equal(t, ExtendedSolutionStatus{
			OriginalMask:              test.mask,
			AdvanceRTKVerified:        test.verified,
			PseudorangeIonoCorrection: test.want,
		}, got, "mask %#x", test.mask)
		assert.Equal(t, test.name, got.PseudorangeIonoCorrection.String(), "mask %#x", test.mask)
	}
}

func TestExtendedSolutionStatusJSON(t *testing.T) {
	b, err := json.Marshal(DecodeExtendedSolutionStatus(0x03))
	require.NoError(t, err)
	assert.JSONEq(t, `{"original_mask":3,"advance_rtk_verified":true,"psuedorange_iono_correction":"Klobuchar Broadcast"}`, string(b))
}

func TestDecodeSignalMask(t *testing.T) {
	assert.Equal(t, SignalMask{
		OriginalMask:            0x23,
		GPSL1UsedInSolution:     true,
		GPSL2UsedInSolution:     true,
		GLONASSL2UsedInSolution: true,
	}, DecodeSignalMask(0x23))

	assert.Equal(t, SignalMask{
		OriginalMask: 0xffffffc8,
	}, DecodeSignalMask(0xffffffc8), "unassigned bits")

	assert.Equal(t, SignalMask{
		OriginalMask:            0x37,
		GPSL1UsedInSolution:     true,
		GPSL2UsedInSolution:     true,
		GPSL3UsedInSolution:     true,
		GLONASSL1UsedInSolution: true,
		GLONASSL2UsedInSolution: true,
	}, DecodeSignalMask(0x37))
}
