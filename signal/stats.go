package signal

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Windowed statistics. Each returns ok=false when the window holds too few
// of the relevant samples for the statistic to mean anything; callers treat
// that as "feature unavailable", never as zero.

// AccelStd is the per-axis standard deviation of accelerometer samples,
// combined across the three axes by RMS.
func AccelStd(samples []Sample) (float64, bool) {
	var xs, ys, zs []float64
	for _, s := range samples {
		if !s.HasAccel() {
			continue
		}
		xs = append(xs, *s.AccelX)
		ys = append(ys, *s.AccelY)
		zs = append(zs, *s.AccelZ)
	}
	return rmsStd(xs, ys, zs)
}

// MagnetoStd is the analogous RMS-combined standard deviation over
// magnetometer samples.
func MagnetoStd(samples []Sample) (float64, bool) {
	var xs, ys, zs []float64
	for _, s := range samples {
		if !s.HasMagneto() {
			continue
		}
		xs = append(xs, *s.MagnetoX)
		ys = append(ys, *s.MagnetoY)
		zs = append(zs, *s.MagnetoZ)
	}
	return rmsStd(xs, ys, zs)
}

func rmsStd(xs, ys, zs []float64) (float64, bool) {
	if len(xs) < 2 {
		return 0, false
	}
	sx, errX := stats.StandardDeviation(stats.Float64Data(xs))
	sy, errY := stats.StandardDeviation(stats.Float64Data(ys))
	sz, errZ := stats.StandardDeviation(stats.Float64Data(zs))
	if errX != nil || errY != nil || errZ != nil {
		return 0, false
	}
	return math.Sqrt((sx*sx + sy*sy + sz*sz) / 3), true
}

// BaroStats returns the standard deviation and the linear-regression slope
// (hPa per second) of barometric pressure over the window. It withholds its
// verdict below 3 pressure samples.
func BaroStats(samples []Sample) (std, slopePerSec float64, ok bool) {
	var series stats.Series
	var ps []float64
	var t0 float64
	for _, s := range samples {
		if s.PressureHPa == nil {
			continue
		}
		if len(ps) == 0 {
			t0 = float64(s.Time.UnixNano()) / 1e9
		}
		x := float64(s.Time.UnixNano())/1e9 - t0
		series = append(series, stats.Coordinate{X: x, Y: *s.PressureHPa})
		ps = append(ps, *s.PressureHPa)
	}
	if len(ps) < 3 {
		return 0, 0, false
	}
	span := series[len(series)-1].X - series[0].X
	if span <= 0 {
		return 0, 0, false
	}
	std, err := stats.StandardDeviation(stats.Float64Data(ps))
	if err != nil {
		return 0, 0, false
	}
	reg, err := stats.LinearRegression(series)
	if err != nil || len(reg) < 2 {
		return 0, 0, false
	}
	slopePerSec = (reg[len(reg)-1].Y - reg[0].Y) / span
	return std, slopePerSec, true
}

// SampleRateHz estimates the window's sample rate as the inverse of the
// median positive inter-sample gap.
func SampleRateHz(samples []Sample) (float64, bool) {
	var gaps []float64
	for i := 1; i < len(samples); i++ {
		gap := samples[i].Time.Sub(samples[i-1].Time).Seconds()
		if gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		return 0, false
	}
	med, err := stats.Median(stats.Float64Data(gaps))
	if err != nil || med <= 0 {
		return 0, false
	}
	return 1 / med, true
}

// accelMagnitudes collects |a| for each complete accelerometer sample.
func accelMagnitudes(samples []Sample) []float64 {
	mags := make([]float64, 0, len(samples))
	for _, s := range samples {
		if !s.HasAccel() {
			continue
		}
		ax, ay, az := *s.AccelX, *s.AccelY, *s.AccelZ
		mags = append(mags, math.Sqrt(ax*ax+ay*ay+az*az))
	}
	return mags
}
