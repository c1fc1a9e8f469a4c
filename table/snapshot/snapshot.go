// Package snapshot persists a table.CalculateTableEV result to a compact
// binary format, the way the teacher's cgo bridge marshals simulation
// results across its process boundary: a flatbuffers table of scalar
// fields plus a vector of per-hand sub-tables, built and read directly
// against the flatbuffers.Builder/Table primitives rather than through
// flatc-generated code, since no schema compiler is available here.
package snapshot

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/google/uuid"

	"tableev/ev"
	"tableev/rules"
)

// Field slot indices for the Snapshot table, in declaration order.
const (
	slotRunID = iota
	slotDecks
	slotStandsSoft17
	slotAllowSurrender
	slotBlackjackPayout
	slotSurrenderPenalty
	slotAllowSplit
	slotAllowResplit
	slotAllowDoubleAfterSplit
	slotEV
	slotEVNormal
	slotEVDouble
	slotEVSurrender
	slotPlayerWinProb
	slotDealerWinProb
	slotPushProb
	slotPlayerBlackjackProb
	slotDealerBlackjackProb
	slotSurrenderProb
	slotPerHand
	snapshotNumFields
)

// Field slot indices for the nested PerHandEV table.
const (
	perHandSlotTotal = iota
	perHandSlotSoft
	perHandSlotDealerUp
	perHandSlotEV
	perHandNumFields
)

// Snapshot is an in-memory, already-decoded view of an encoded run: the
// run's identifier, the rules it was computed under, and its result.
type Snapshot struct {
	RunID  string
	Rules  rules.GameRules
	Result ev.TableEVResult
}

// Encode tags result with a fresh run identifier and serializes it to the
// flatbuffers wire format.
func Encode(result ev.TableEVResult) []byte {
	return EncodeWithRunID(uuid.NewString(), result)
}

// EncodeWithRunID serializes result under an explicit run identifier,
// letting callers re-encode a snapshot deterministically in tests.
func EncodeWithRunID(runID string, result ev.TableEVResult) []byte {
	b := flatbuffers.NewBuilder(1024)

	perHandOffsets := make([]flatbuffers.UOffsetT, len(result.PerHand))
	for i, hr := range result.PerHand {
		b.StartObject(perHandNumFields)
		b.PrependFloat64Slot(perHandSlotEV, hr.ExpectedValue, 0)
		b.PrependInt32Slot(perHandSlotDealerUp, int32(hr.DealerUp), 0)
		b.PrependBoolSlot(perHandSlotSoft, hr.HandSoft, false)
		b.PrependInt32Slot(perHandSlotTotal, int32(hr.HandTotal), 0)
		perHandOffsets[i] = b.EndObject()
	}

	b.StartVector(flatbuffers.SizeUOffsetT, len(perHandOffsets), flatbuffers.SizeUOffsetT)
	for i := len(perHandOffsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(perHandOffsets[i])
	}
	perHandVec := b.EndVector(len(perHandOffsets))

	runIDOffset := b.CreateString(runID)

	b.StartObject(snapshotNumFields)
	b.PrependUOffsetTSlot(slotPerHand, perHandVec, 0)
	b.PrependFloat64Slot(slotSurrenderProb, result.SurrenderProb, 0)
	b.PrependFloat64Slot(slotDealerBlackjackProb, result.DealerBlackjackProb, 0)
	b.PrependFloat64Slot(slotPlayerBlackjackProb, result.PlayerBlackjackProb, 0)
	b.PrependFloat64Slot(slotPushProb, result.PushProb, 0)
	b.PrependFloat64Slot(slotDealerWinProb, result.DealerWinProb, 0)
	b.PrependFloat64Slot(slotPlayerWinProb, result.PlayerWinProb, 0)
	b.PrependFloat64Slot(slotEVSurrender, result.EVSurrender, 0)
	b.PrependFloat64Slot(slotEVDouble, result.EVDouble, 0)
	b.PrependFloat64Slot(slotEVNormal, result.EVNormal, 0)
	b.PrependFloat64Slot(slotEV, result.EV, 0)
	b.PrependBoolSlot(slotAllowDoubleAfterSplit, result.Rules.AllowDoubleAfterSplit, false)
	b.PrependBoolSlot(slotAllowResplit, result.Rules.AllowResplit, false)
	b.PrependBoolSlot(slotAllowSplit, result.Rules.AllowSplit, false)
	b.PrependFloat64Slot(slotSurrenderPenalty, result.Rules.SurrenderPenalty, 0)
	b.PrependFloat64Slot(slotBlackjackPayout, result.Rules.BlackjackPayout, 0)
	b.PrependBoolSlot(slotAllowSurrender, result.Rules.AllowSurrender, false)
	b.PrependBoolSlot(slotStandsSoft17, result.Rules.DealerStandsOnSoft17, false)
	b.PrependInt32Slot(slotDecks, int32(result.Rules.Decks), 0)
	b.PrependUOffsetTSlot(slotRunID, runIDOffset, 0)
	root := b.EndObject()

	b.Finish(root)
	return b.FinishedBytes()
}

// Decode parses a buffer produced by Encode/EncodeWithRunID back into a
// Snapshot.
func Decode(buf []byte) (Snapshot, error) {
	if len(buf) < flatbuffers.SizeUOffsetT {
		return Snapshot{}, fmt.Errorf("snapshot: buffer too small (%d bytes)", len(buf))
	}

	n := flatbuffers.GetUOffsetT(buf)
	root := &flatbuffers.Table{Bytes: buf, Pos: n}

	var snap Snapshot

	if o := root.Offset(flatbuffers.VOffsetT((slotRunID + 2) * 2)); o != 0 {
		snap.RunID = string(root.ByteVector(flatbuffers.UOffsetT(o) + root.Pos))
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotDecks + 2) * 2)); o != 0 {
		snap.Rules.Decks = int(root.GetInt32(flatbuffers.UOffsetT(o) + root.Pos))
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotStandsSoft17 + 2) * 2)); o != 0 {
		snap.Rules.DealerStandsOnSoft17 = root.GetBool(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotAllowSurrender + 2) * 2)); o != 0 {
		snap.Rules.AllowSurrender = root.GetBool(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotBlackjackPayout + 2) * 2)); o != 0 {
		snap.Rules.BlackjackPayout = root.GetFloat64(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotSurrenderPenalty + 2) * 2)); o != 0 {
		snap.Rules.SurrenderPenalty = root.GetFloat64(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotAllowSplit + 2) * 2)); o != 0 {
		snap.Rules.AllowSplit = root.GetBool(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotAllowResplit + 2) * 2)); o != 0 {
		snap.Rules.AllowResplit = root.GetBool(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotAllowDoubleAfterSplit + 2) * 2)); o != 0 {
		snap.Rules.AllowDoubleAfterSplit = root.GetBool(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotEV + 2) * 2)); o != 0 {
		snap.Result.EV = root.GetFloat64(flatbuffers.UOffsetT(o) + root.Pos)
		snap.Result.OverallEV = snap.Result.EV
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotEVNormal + 2) * 2)); o != 0 {
		snap.Result.EVNormal = root.GetFloat64(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotEVDouble + 2) * 2)); o != 0 {
		snap.Result.EVDouble = root.GetFloat64(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotEVSurrender + 2) * 2)); o != 0 {
		snap.Result.EVSurrender = root.GetFloat64(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotPlayerWinProb + 2) * 2)); o != 0 {
		snap.Result.PlayerWinProb = root.GetFloat64(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotDealerWinProb + 2) * 2)); o != 0 {
		snap.Result.DealerWinProb = root.GetFloat64(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotPushProb + 2) * 2)); o != 0 {
		snap.Result.PushProb = root.GetFloat64(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotPlayerBlackjackProb + 2) * 2)); o != 0 {
		snap.Result.PlayerBlackjackProb = root.GetFloat64(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotDealerBlackjackProb + 2) * 2)); o != 0 {
		snap.Result.DealerBlackjackProb = root.GetFloat64(flatbuffers.UOffsetT(o) + root.Pos)
	}
	if o := root.Offset(flatbuffers.VOffsetT((slotSurrenderProb + 2) * 2)); o != 0 {
		snap.Result.SurrenderProb = root.GetFloat64(flatbuffers.UOffsetT(o) + root.Pos)
	}
	snap.Result.Rules = snap.Rules

	if o := root.Offset(flatbuffers.VOffsetT((slotPerHand + 2) * 2)); o != 0 {
		vecPos := root.Vector(flatbuffers.UOffsetT(o))
		length := root.VectorLen(flatbuffers.UOffsetT(o))
		snap.Result.PerHand = make([]ev.Result, length)
		for i := 0; i < length; i++ {
			elemPos := vecPos + flatbuffers.UOffsetT(i)*flatbuffers.SizeUOffsetT
			indirect := root.Indirect(elemPos)
			elem := &flatbuffers.Table{Bytes: buf, Pos: indirect}

			var r ev.Result
			if eo := elem.Offset(flatbuffers.VOffsetT((perHandSlotTotal + 2) * 2)); eo != 0 {
				r.HandTotal = int(elem.GetInt32(flatbuffers.UOffsetT(eo) + elem.Pos))
			}
			if eo := elem.Offset(flatbuffers.VOffsetT((perHandSlotSoft + 2) * 2)); eo != 0 {
				r.HandSoft = elem.GetBool(flatbuffers.UOffsetT(eo) + elem.Pos)
			}
			if eo := elem.Offset(flatbuffers.VOffsetT((perHandSlotDealerUp + 2) * 2)); eo != 0 {
				r.DealerUp = int(elem.GetInt32(flatbuffers.UOffsetT(eo) + elem.Pos))
			}
			if eo := elem.Offset(flatbuffers.VOffsetT((perHandSlotEV + 2) * 2)); eo != 0 {
				r.ExpectedValue = elem.GetFloat64(flatbuffers.UOffsetT(eo) + elem.Pos)
			}
			snap.Result.PerHand[i] = r
		}
	}

	return snap, nil
}
