package filter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ianrastall/pgnfilter/internal/game"
	"github.com/ianrastall/pgnfilter/internal/movetext"
)

// Verdict is the outcome of evaluating one game.
type Verdict struct {
	// Keep reports whether the game passed every enabled predicate.
	Keep bool
	// Record is the game to write when Keep is true. It is the input
	// record unless stripping changed the move text, in which case it
	// is a rewritten copy and Modified is true.
	Record *game.Record
	// Modified reports that Record's move text differs from the input.
	Modified bool
}

// Evaluator applies Options to games one at a time. Predicates run
// cheapest first and the first failure rejects the game. Malformed move
// text never rejects; unmatched closing delimiters are absorbed and
// reported once per game to the warning log.
type Evaluator struct {
	opts   Options
	log    io.Writer
	seen   int64 // games evaluated, 1-based in warnings
	warned int64 // last game that produced a warning
}

// NewEvaluator creates an evaluator. log receives malformed-input
// warnings and may be nil to discard them.
func NewEvaluator(opts Options, log io.Writer) *Evaluator {
	return &Evaluator{opts: opts, log: log}
}

// Evaluate decides whether rec is kept and returns the record to write.
func (e *Evaluator) Evaluate(rec *game.Record) Verdict {
	e.seen++
	if e.opts.StandardOnly && !isStandard(rec) {
		return Verdict{}
	}
	if e.opts.CheckmateOnly && !movetext.HasCheckmate(rec.MoveText) {
		return Verdict{}
	}
	if e.opts.ratingBounded() && !e.ratingOK(rec) {
		return Verdict{}
	}
	if e.opts.plyBounded() && !e.plyOK(rec) {
		return Verdict{}
	}
	return e.accept(rec)
}

// accept applies the stripping switches to a kept game.
func (e *Evaluator) accept(rec *game.Record) Verdict {
	if !e.opts.stripping() {
		return Verdict{Keep: true, Record: rec}
	}
	stripped := movetext.Strip(rec.MoveText, movetext.StripOptions{
		Comments:   e.opts.RemoveComments,
		NAGs:       e.opts.RemoveNAGs,
		Variations: e.opts.RemoveVariations,
		OnStray:    e.stray,
	})
	if stripped == rec.MoveText {
		return Verdict{Keep: true, Record: rec}
	}
	out := rec.Clone()
	out.MoveText = stripped
	return Verdict{Keep: true, Record: out, Modified: true}
}

// standardVariants are the Variant tag words that mark an ordinary game.
var standardVariants = []string{"standard", "normal", "classical"}

// isStandard reports whether rec is an ordinary game from the initial
// position. A Variant tag must name a standard variant; without one,
// SetUp "1" or a FEN tag marks a non-default start.
func isStandard(rec *game.Record) bool {
	if variant, ok := rec.LookupTag("Variant"); ok {
		v := strings.ToLower(variant)
		for _, word := range standardVariants {
			if strings.Contains(v, word) {
				return true
			}
		}
		return false
	}
	if rec.GetTag("SetUp") == "1" {
		return false
	}
	return rec.GetTag("FEN") == ""
}

func (e *Evaluator) ratingOK(rec *game.Record) bool {
	white, wok := parseRating(rec.GetTag("WhiteElo"))
	black, bok := parseRating(rec.GetTag("BlackElo"))
	if e.opts.BothRated {
		return wok && bok && e.opts.inRatingBounds(white) && e.opts.inRatingBounds(black)
	}
	if !wok && !bok {
		return false
	}
	if e.opts.MinRating > 0 {
		// Absent sides parse to zero, so the better rated side wins.
		best := white
		if black > best {
			best = black
		}
		if best < e.opts.MinRating {
			return false
		}
	}
	if e.opts.MaxRating > 0 {
		if (wok && white > e.opts.MaxRating) || (bok && black > e.opts.MaxRating) {
			return false
		}
	}
	return true
}

func (e *Evaluator) plyOK(rec *game.Record) bool {
	tk := movetext.NewTokenizer(rec.MoveText)
	tk.OnStray = e.stray
	plies := tk.Count()
	if e.opts.MinPlies > 0 && plies < e.opts.MinPlies {
		return false
	}
	if e.opts.MaxPlies > 0 && plies > e.opts.MaxPlies {
		return false
	}
	return true
}

// parseRating reads an Elo tag value. Placeholder values such as "",
// "-" and "?" and anything non-positive count as no rating.
func parseRating(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// stray logs one malformed-move-text warning per game.
func (e *Evaluator) stray(offset int, ch byte) {
	if e.log == nil || e.warned == e.seen {
		return
	}
	e.warned = e.seen
	fmt.Fprintf(e.log, "game %d: unmatched %q at move-text offset %d\n", e.seen, ch, offset)
}
