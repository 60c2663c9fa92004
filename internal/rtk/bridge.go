// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package rtk

// CorrectionSink consumes raw RTCM payloads, one per correction message,
// fire-and-forget.
type CorrectionSink interface {
	PublishCorrections(data []byte)
}

// SurveySink consumes survey-in snapshots as they arrive. Optional.
type SurveySink interface {
	PublishSurvey(s SurveyInStatus)
}

// Bridge implements the driver's callback contract by delegating to the
// serial channel, the survey tracker and the correction sink. It keeps no
// buffer of its own: every read and write is a direct pass-through at call
// time, which the driver relies on.
type Bridge struct {
	ch      SerialChannel
	tracker *SurveyInTracker
	rtcm    CorrectionSink
	surveys SurveySink // may be nil
	report  Reporter
}

// NewBridge builds a bridge over ch. surveys and report may be nil.
func NewBridge(ch SerialChannel, tracker *SurveyInTracker, rtcm CorrectionSink, surveys SurveySink, report Reporter) *Bridge {
	return &Bridge{ch: ch, tracker: tracker, rtcm: rtcm, surveys: surveys, report: report}
}

// Handle services one callback event and returns the integer result the
// driver contract expects. Errors never escape as Go errors here; the
// driver only understands return codes.
func (b *Bridge) Handle(ev CallbackEvent) int {
	switch ev := ev.(type) {
	case ReadRequest:
		if b.ch.Available() == 0 {
			if !b.ch.WaitReadable() {
				// Timed out: no new data, not fatal.
				return 0
			}
		}
		n, err := b.ch.Read(ev.Buf)
		if err != nil {
			b.report.emit(LevelWarn, "bridge", "serial read: %v", err)
			return 0
		}
		return n

	case WriteRequest:
		n, err := b.ch.Write(ev.Data)
		if err != nil || n != len(ev.Data) {
			b.report.emit(LevelWarn, "bridge", "serial write: wrote %d of %d bytes (err=%v)", n, len(ev.Data), err)
			return -1
		}
		return len(ev.Data)

	case SetBaudRate:
		// The transport contract has no baud-change failure signal; the
		// driver expects an unconditional success indicator.
		if err := b.ch.SetBaud(ev.Baud); err != nil {
			b.report.emit(LevelWarn, "bridge", "set baud %d: %v", ev.Baud, err)
		}
		return 1

	case SetClock:
		// The host clock is not ours to adjust.
		return 0

	case CorrectionMessage:
		owned := make([]byte, len(ev.Data))
		copy(owned, ev.Data)
		b.rtcm.PublishCorrections(owned)
		return 0

	case SurveyStatus:
		b.tracker.Update(ev.Status)
		if b.surveys != nil {
			b.surveys.PublishSurvey(ev.Status)
		}
		b.report.emit(LevelDebug, "bridge", "survey-in: duration %ds accuracy %.1fmm valid=%v active=%v",
			ev.Status.DurationS, ev.Status.MeanAccuracyMM, ev.Status.Valid(), ev.Status.Active())
		return 0

	case UnknownEvent:
		b.report.emit(LevelWarn, "bridge", "ignoring unknown callback tag %d", ev.Tag)
		return 0

	default:
		b.report.emit(LevelWarn, "bridge", "ignoring unexpected callback event %T", ev)
		return 0
	}
}
