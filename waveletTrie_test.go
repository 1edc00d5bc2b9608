package wavelettrie

import (
	"errors"
	"testing"

	"github.com/AlexWan0/go-wavelettrie/bitvec"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func bv(s string) *bitvec.BitVector {
	v, err := bitvec.Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func bvs(ss ...string) []*bitvec.BitVector {
	out := make([]*bitvec.BitVector, len(ss))
	for i, s := range ss {
		out[i] = bv(s)
	}
	return out
}

// dump renders the trie in pre-order as "prefix|positions".
func dump(t *Trie) []string {
	var out []string
	t.root.walk(0, func(n *dynNode, _ int) {
		out = append(out, n.prefix.String()+"|"+n.positions.String())
	})
	return out
}

func newTrie() *Trie {
	tr, err := New()
	if err != nil {
		panic(err)
	}
	return tr
}

func TestWaveletTrie(t *testing.T) {
	Convey("When a trie is empty", t, func() {
		tr := newTrie()
		So(tr.Len(), ShouldEqual, 0)
		So(dump(tr), ShouldResemble, []string{"|"})
		n, ok := tr.Rank(bv("0"), 0)
		So(ok, ShouldBeTrue)
		So(n, ShouldEqual, 0)
		_, ok = tr.Access(0)
		So(ok, ShouldBeFalse)
		_, ok = tr.Select(bv("0"), 1)
		So(ok, ShouldBeFalse)
		So(func() { tr.Rank(bv("0"), 1) }, ShouldPanic)
	})
	Convey("When built in bulk from 00, 01, 10", t, func() {
		tr, err := FromSequences(bvs("00", "01", "10"))
		So(err, ShouldBeNil)
		So(tr.Len(), ShouldEqual, 3)
		So(dump(tr), ShouldResemble, []string{"|001", "|01", "|0", "|0", "0|0"})

		Convey("rank follows prefix-match semantics", func() {
			n, ok := tr.Rank(bv("00"), 3)
			So(ok, ShouldBeTrue)
			So(n, ShouldEqual, 1)
			n, _ = tr.Rank(bv("01"), 3)
			So(n, ShouldEqual, 1)
			n, _ = tr.Rank(bv("1"), 3)
			So(n, ShouldEqual, 1)
			n, _ = tr.Rank(bv("0"), 3)
			So(n, ShouldEqual, 2)
			n, _ = tr.Rank(bv(""), 2)
			So(n, ShouldEqual, 2)
			_, ok = tr.Rank(bv("11"), 3)
			So(ok, ShouldBeFalse)
		})
		Convey("access and select", func() {
			for i, want := range []string{"00", "01", "10"} {
				got, ok := tr.Access(uint64(i))
				So(ok, ShouldBeTrue)
				So(got.String(), ShouldEqual, want)
			}
			pos, ok := tr.Select(bv("10"), 1)
			So(ok, ShouldBeTrue)
			So(pos, ShouldEqual, 2)
			pos, _ = tr.Select(bv("0"), 2)
			So(pos, ShouldEqual, 1)
			_, ok = tr.Select(bv("0"), 3)
			So(ok, ShouldBeFalse)
			_, ok = tr.Select(bv("11"), 1)
			So(ok, ShouldBeFalse)
		})
	})
	Convey("When built incrementally from 00, 01, 10", t, func() {
		tr := newTrie()
		So(tr.Append(bv("00")), ShouldBeNil)
		So(dump(tr), ShouldResemble, []string{"00|0"})
		So(tr.Append(bv("01")), ShouldBeNil)
		So(dump(tr), ShouldResemble, []string{"0|01", "|0", "|0"})
		So(tr.Append(bv("10")), ShouldBeNil)
		Convey("it matches the bulk built trie", func() {
			bulk, err := FromSequences(bvs("00", "01", "10"))
			So(err, ShouldBeNil)
			So(dump(tr), ShouldResemble, dump(bulk))
		})
	})
	Convey("When inserting in the middle", t, func() {
		tr := newTrie()
		So(tr.Append(bv("110")), ShouldBeNil)
		So(tr.Append(bv("111")), ShouldBeNil)
		So(tr.Insert(bv("0"), 1), ShouldBeNil)
		So(tr.Insert(bv("110"), 0), ShouldBeNil)
		var got []string
		for i := uint64(0); i < tr.Len(); i++ {
			v, _ := tr.Access(i)
			got = append(got, v.String())
		}
		So(got, ShouldResemble, []string{"110", "110", "0", "111"})
		n, _ := tr.Rank(bv("110"), 4)
		So(n, ShouldEqual, 2)
		n, _ = tr.Rank(bv("11"), 3)
		So(n, ShouldEqual, 2)
		err := tr.Insert(bv("0"), 5)
		So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)
	})
	Convey("Duplicates of a single value stay in one leaf", t, func() {
		tr, err := FromSequences(bvs("101", "101", "101"))
		So(err, ShouldBeNil)
		So(dump(tr), ShouldResemble, []string{"101|000"})
		So(tr.Insert(bv("101"), 1), ShouldBeNil)
		So(dump(tr), ShouldResemble, []string{"101|0000"})
	})
}

func TestPrefixConflicts(t *testing.T) {
	Convey("Given a trie holding 01 and 10", t, func() {
		tr, err := FromSequences(bvs("01", "10"))
		So(err, ShouldBeNil)
		before := dump(tr)

		for _, seq := range []string{"0", "", "011", "1", "100"} {
			err := tr.Append(bv(seq))
			So(errors.Is(err, ErrPrefixConflict), ShouldBeTrue)
			So(tr.Len(), ShouldEqual, 2)
			So(dump(tr), ShouldResemble, before)
		}
		var pce *PrefixConflictError
		So(errors.As(tr.Append(bv("011")), &pce), ShouldBeTrue)
		So(pce.Reason, ShouldEqual, StoredIsPrefix)
		So(errors.As(tr.Append(bv("0")), &pce), ShouldBeTrue)
		So(pce.Reason, ShouldEqual, SequenceIsPrefix)
	})
	Convey("Given a trie holding the empty string", t, func() {
		tr := newTrie()
		So(tr.Append(bv("")), ShouldBeNil)
		So(tr.Append(bv("")), ShouldBeNil)
		So(tr.Len(), ShouldEqual, 2)
		So(errors.Is(tr.Append(bv("1")), ErrPrefixConflict), ShouldBeTrue)
		So(tr.Len(), ShouldEqual, 2)
	})
	Convey("A rejected insert deep in the trie leaves every level unchanged", t, func() {
		tr, err := FromSequences(bvs("000", "001", "01", "1"))
		So(err, ShouldBeNil)
		before, err := tr.MarshalBinary()
		So(err, ShouldBeNil)
		So(errors.Is(tr.Insert(bv("00"), 2), ErrPrefixConflict), ShouldBeTrue)
		after, err := tr.MarshalBinary()
		So(err, ShouldBeNil)
		So(after, ShouldResemble, before)
	})
	Convey("Bulk building a batch that is not prefix-free fails", t, func() {
		_, err := FromSequences(bvs("0", "01", "1"))
		So(errors.Is(err, ErrPrefixConflict), ShouldBeTrue)
		var pce *PrefixConflictError
		So(errors.As(err, &pce), ShouldBeTrue)
		So(pce.Index, ShouldEqual, 0)
	})
}

func TestInvariantViolation(t *testing.T) {
	Convey("Routing into a missing child panics", t, func() {
		tr, err := FromSequences(bvs("0", "1"))
		So(err, ShouldBeNil)
		tr.root.right = nil
		var recovered interface{}
		func() {
			defer func() { recovered = recover() }()
			tr.Append(bv("10"))
		}()
		err, ok := recovered.(error)
		So(ok, ShouldBeTrue)
		So(errors.Is(err, ErrInvariantViolation), ShouldBeTrue)
		var ie *InvariantError
		So(errors.As(err, &ie), ShouldBeTrue)
		So(ie.Depth, ShouldEqual, 0)
	})
}

func TestZeroValue(t *testing.T) {
	Convey("A zero Trie behaves as an empty one", t, func() {
		var tr Trie
		So(tr.Len(), ShouldEqual, 0)
		n, ok := tr.Rank(bv("1"), 0)
		So(ok, ShouldBeTrue)
		So(n, ShouldEqual, 0)
		_, ok = tr.Access(0)
		So(ok, ShouldBeFalse)
		_, ok = tr.Select(bv("1"), 1)
		So(ok, ShouldBeFalse)
		So(tr.Freeze().Len(), ShouldEqual, 0)

		So(tr.Append(bv("10")), ShouldBeNil)
		So(tr.Append(bv("11")), ShouldBeNil)
		So(tr.Len(), ShouldEqual, 2)
		v, ok := tr.Access(1)
		So(ok, ShouldBeTrue)
		So(v.String(), ShouldEqual, "11")

		out, err := new(Trie).MarshalBinary()
		So(err, ShouldBeNil)
		empty := new(Trie)
		So(empty.UnmarshalBinary(out), ShouldBeNil)
		So(empty.Len(), ShouldEqual, 0)
	})
}

func TestBuilderAndOptions(t *testing.T) {
	Convey("Builder builds what FromSequences builds", t, func() {
		b := NewBuilder()
		for _, s := range []string{"00", "01", "10"} {
			b.PushBack(bv(s))
		}
		tr, err := b.Build()
		So(err, ShouldBeNil)
		So(dump(tr), ShouldResemble, []string{"|001", "|01", "|0", "|0", "0|0"})
	})
	Convey("A nil logger is rejected", t, func() {
		_, err := New(WithLogger(nil))
		So(err, ShouldNotBeNil)
	})
	Convey("Splits are logged at debug level", t, func() {
		core, logs := observer.New(zap.DebugLevel)
		tr, err := New(WithLogger(zap.New(core)))
		So(err, ShouldBeNil)
		So(tr.Append(bv("00")), ShouldBeNil)
		So(tr.Append(bv("01")), ShouldBeNil)
		So(logs.FilterMessage("split node").Len(), ShouldEqual, 1)
		So(tr.Append(bv("0")), ShouldNotBeNil)
		So(logs.FilterMessage("insert rejected").Len(), ShouldEqual, 1)
	})
}

func TestStaticAndMarshal(t *testing.T) {
	words := []string{"abra", "cad", "abra", "a", "bra", "cadabra", "abra"}
	tr := newTrie()
	for _, w := range words {
		if err := tr.Append(FromText(w)); err != nil {
			t.Fatal(err)
		}
	}
	Convey("A frozen trie answers like the dynamic one", t, func() {
		st := tr.Freeze()
		So(st.Len(), ShouldEqual, tr.Len())
		So(st.AllocSize(), ShouldBeGreaterThan, 0)
		for i := uint64(0); i <= tr.Len(); i++ {
			for _, q := range []string{"abra", "a", "cad", "bra", "zzz"} {
				want, wok := tr.Rank(FromText(q), i)
				got, gok := st.Rank(FromText(q), i)
				So(gok, ShouldEqual, wok)
				So(got, ShouldEqual, want)
				want, wok = tr.Rank(TextPrefix(q), i)
				got, gok = st.Rank(TextPrefix(q), i)
				So(gok, ShouldEqual, wok)
				So(got, ShouldEqual, want)
			}
		}
		for i := range words {
			v, ok := st.Access(uint64(i))
			So(ok, ShouldBeTrue)
			s, ok := TextOf(v)
			So(ok, ShouldBeTrue)
			So(s, ShouldEqual, words[i])
		}
		pos, ok := st.Select(FromText("abra"), 3)
		So(ok, ShouldBeTrue)
		So(pos, ShouldEqual, 6)
		pos, ok = st.Select(TextPrefix("cad"), 2)
		So(ok, ShouldBeTrue)
		So(pos, ShouldEqual, 5)
		_, ok = st.Select(TextPrefix("cad"), 3)
		So(ok, ShouldBeFalse)
	})
	Convey("When a trie is marshaled", t, func() {
		out, err := tr.MarshalBinary()
		So(err, ShouldBeNil)
		got := new(Trie)
		So(got.UnmarshalBinary(out), ShouldBeNil)
		So(dump(got), ShouldResemble, dump(tr))
		n, ok := got.Rank(TextPrefix("a"), got.Len())
		So(ok, ShouldBeTrue)
		So(n, ShouldEqual, 4)
		So(got.Append(FromText("dab")), ShouldBeNil)
	})
	Convey("When the encoding is damaged", t, func() {
		out, err := tr.MarshalBinary()
		So(err, ShouldBeNil)
		err = new(Trie).UnmarshalBinary(out[:len(out)/2])
		So(errors.Is(err, ErrCorrupt), ShouldBeTrue)
		err = new(Trie).UnmarshalBinary([]byte{0x07})
		So(errors.Is(err, ErrCorrupt), ShouldBeTrue)
		// a leaf whose prefix claims 2^64-1 bits but carries no bytes
		huge := []byte{0x01, 0xc2, 0xcf, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xa0, 0x00, 0xa0}
		err = new(Trie).UnmarshalBinary(huge)
		So(errors.Is(err, ErrCorrupt), ShouldBeTrue)
	})
}

func TestText(t *testing.T) {
	Convey("text encoding round-trips", t, func() {
		s, ok := TextOf(FromText("hello"))
		So(ok, ShouldBeTrue)
		So(s, ShouldEqual, "hello")
		_, ok = TextOf(TextPrefix("hello"))
		So(ok, ShouldBeFalse)
		_, ok = TextOf(bv("101"))
		So(ok, ShouldBeFalse)
		So(FromText("he").IsPrefixOf(FromText("hello")), ShouldBeFalse)
	})
}
