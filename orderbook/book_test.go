package orderbook_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/ordlab/orderbook"
)

func px(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// requireSorted asserts ascending (price, identity) order.
func requireSorted(t *testing.T, b *orderbook.Book) {
	t.Helper()
	orders := b.Orders()
	for i := 1; i < len(orders); i++ {
		prev, cur := orders[i-1], orders[i]
		c := prev.Price.Cmp(cur.Price)
		require.True(t, c < 0 || (c == 0 && prev.ID < cur.ID), "%s before %s", prev, cur)
	}
}

type BookSuite struct {
	suite.Suite
	b *orderbook.Book
}

func (s *BookSuite) SetupTest() {
	b, err := orderbook.NewBook()
	s.Require().NoError(err)
	s.b = b
}

func (s *BookSuite) add(qty int64, price float64) (orderbook.Order, int) {
	o, pos, err := s.b.Add(qty, px(price))
	s.Require().NoError(err)
	return o, pos
}

func (s *BookSuite) TestAddAssignsIncreasingIdentities() {
	a, _ := s.add(1, 10)
	b, _ := s.add(1, 5)
	c, _ := s.add(1, 10)
	s.Equal([]uint64{1, 2, 3}, []uint64{a.ID, b.ID, c.ID})
	s.Equal(uint64(3), s.b.LastID())
}

func (s *BookSuite) TestNewOrderGoesBehindItsPriceLevel() {
	s.add(4, 10)
	s.add(2, 5)
	s.add(7, 12)

	_, pos := s.add(9, 10)
	s.Equal(2, pos, "second order at 10 must follow the first")
	s.Equal(3, s.b.InsertionPoint(px(10)))
	s.Equal(0, s.b.InsertionPoint(px(1)))
	s.Equal(4, s.b.InsertionPoint(px(99)))
	requireSorted(s.T(), s.b)
}

func (s *BookSuite) TestFindReturnsEarliestAtPrice() {
	s.add(1, 7)
	first, _ := s.add(1, 9)
	s.add(1, 9)
	s.add(1, 9)
	s.add(1, 11)

	pos, ok := s.b.Find(px(9))
	s.Require().True(ok)
	o, _ := s.b.At(pos)
	s.Equal(first.ID, o.ID)

	_, ok = s.b.Find(px(8))
	s.False(ok)
	_, ok = s.b.Find(px(12))
	s.False(ok)
}

func (s *BookSuite) TestFindOnEmptyBook() {
	_, ok := s.b.Find(px(1))
	s.False(ok)
	s.Equal(0, s.b.InsertionPoint(px(1)))
}

func (s *BookSuite) TestDepthSumsOnlyItsPriceLevel() {
	s.add(5, 7)
	s.add(3, 9)
	s.add(4, 9)
	s.add(6, 11)

	s.Equal(int64(7), s.b.Depth(px(9)))
	s.Equal(int64(6), s.b.Depth(px(11)))
	s.Equal(int64(0), s.b.Depth(px(8)))
	s.Equal(int64(0), s.b.Depth(px(12)))
}

func (s *BookSuite) TestInsertRejectsStaleIdentity() {
	_, err := s.b.Insert(orderbook.Order{ID: 5, Quantity: 1, Price: px(1)})
	s.Require().NoError(err)
	_, err = s.b.Insert(orderbook.Order{ID: 5, Quantity: 1, Price: px(2)})
	s.ErrorIs(err, orderbook.ErrIdentityOrder)
	_, err = s.b.Insert(orderbook.Order{ID: 3, Quantity: 1, Price: px(2)})
	s.ErrorIs(err, orderbook.ErrIdentityOrder)
	s.Equal(1, s.b.Len())
}

func (s *BookSuite) TestRemoveShiftsTail() {
	s.add(1, 1)
	s.add(2, 2)
	s.add(3, 3)

	o, ok := s.b.Remove(1)
	s.Require().True(ok)
	s.Equal(uint64(2), o.ID)
	s.Equal(2, s.b.Len())

	rest := s.b.Orders()
	s.Equal(uint64(1), rest[0].ID)
	s.Equal(uint64(3), rest[1].ID)

	_, ok = s.b.Remove(2)
	s.False(ok)
	_, ok = s.b.Remove(-1)
	s.False(ok)
}

func (s *BookSuite) TestFillMayGoNegative() {
	_, pos := s.add(5, 3)
	left, ok := s.b.Fill(pos, 8)
	s.True(ok)
	s.Equal(int64(-3), left)

	o, _ := s.b.At(pos)
	s.Equal(int64(-3), o.Quantity)

	_, ok = s.b.Fill(7, 1)
	s.False(ok)
}

func (s *BookSuite) TestCapacityDoublesWhenFull() {
	var caps []int
	for i := 0; i < 5; i++ {
		s.add(1, float64(i+1))
		caps = append(caps, s.b.Cap())
	}
	s.Equal([]int{1, 2, 4, 4, 8}, caps)
}

func (s *BookSuite) TestCapacityHysteresis() {
	for i := 0; i < 5; i++ {
		s.add(1, float64(i+1))
	}
	s.Require().Equal(8, s.b.Cap())

	// Down to cap/4+1 without shrinking.
	s.b.Remove(0)
	s.b.Remove(0)
	s.Require().Equal(3, s.b.Len())
	s.Require().Equal(8, s.b.Cap())

	// Reaching a quarter halves the array once.
	s.b.Remove(0)
	s.Equal(4, s.b.Cap())

	// Insert/remove round trips at the boundary leave it alone.
	for i := 0; i < 4; i++ {
		s.add(1, 50)
		s.Equal(4, s.b.Cap())
		s.b.Remove(s.b.Len() - 1)
		s.Equal(4, s.b.Cap())
	}

	// Same at the growth boundary: a full array grows once, then stays.
	s.add(1, 60)
	s.add(1, 61)
	s.Require().Equal(4, s.b.Len())
	s.add(1, 62)
	s.Equal(8, s.b.Cap())
	s.b.Remove(0)
	s.Equal(8, s.b.Cap())
	s.add(1, 63)
	s.Equal(8, s.b.Cap())
}

func (s *BookSuite) TestShrinkToEmpty() {
	s.add(1, 1)
	s.b.Remove(0)
	s.Equal(0, s.b.Len())
	s.Equal(0, s.b.Cap())

	s.add(1, 1)
	s.Equal(1, s.b.Cap())
}

func TestBookSuite(t *testing.T) {
	suite.Run(t, new(BookSuite))
}

func TestNewBook_Options(t *testing.T) {
	_, err := orderbook.NewBook(orderbook.WithCapacity(-1))
	assert.ErrorIs(t, err, orderbook.ErrBadCapacity)

	_, err = orderbook.NewBook(orderbook.WithMaxCapacity(-1))
	assert.ErrorIs(t, err, orderbook.ErrBadCapacity)

	_, err = orderbook.NewBook(orderbook.WithCapacity(8), orderbook.WithMaxCapacity(4))
	assert.ErrorIs(t, err, orderbook.ErrOutOfMemory)

	b, err := orderbook.NewBook(orderbook.WithCapacity(16))
	require.NoError(t, err)
	assert.Equal(t, 16, b.Cap())
}

func TestBook_OutOfMemoryLeavesBookIntact(t *testing.T) {
	b, err := orderbook.NewBook(orderbook.WithMaxCapacity(2))
	require.NoError(t, err)
	_, _, err = b.Add(1, px(2))
	require.NoError(t, err)
	_, _, err = b.Add(1, px(1))
	require.NoError(t, err)
	before := b.Orders()

	_, _, err = b.Add(1, px(3))
	require.ErrorIs(t, err, orderbook.ErrOutOfMemory)
	assert.Equal(t, before, b.Orders())
	assert.Equal(t, 2, b.Cap())
	assert.Equal(t, uint64(2), b.LastID())
}

func TestBook_RandomOperationsStaySorted(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	b, err := orderbook.NewBook()
	require.NoError(t, err)

	for i := 0; i < 3000; i++ {
		if b.Len() > 0 && rng.Intn(3) == 0 {
			_, ok := b.Remove(rng.Intn(b.Len()))
			require.True(t, ok)
		} else {
			price := decimal.New(int64(rng.Intn(40)+1), -1) // 0.1 .. 4.0
			_, _, err := b.Add(int64(rng.Intn(9)+1), price)
			require.NoError(t, err)
		}
		requireSorted(t, b)
		require.True(t, b.Len() > b.Cap()/4 || b.Cap() <= 1 || b.Len() == 0 && b.Cap() == 0,
			"len %d cap %d", b.Len(), b.Cap())
	}

	// Both search modes agree with a linear scan.
	orders := b.Orders()
	for p := int64(0); p <= 41; p++ {
		price := decimal.New(p, -1)
		first, after := -1, 0
		for i, o := range orders {
			if first < 0 && o.Price.Equal(price) {
				first = i
			}
			if o.Price.LessThanOrEqual(price) {
				after = i + 1
			}
		}
		pos, ok := b.Find(price)
		assert.Equal(t, first >= 0, ok, "price %s", price)
		if ok {
			assert.Equal(t, first, pos, "price %s", price)
		}
		assert.Equal(t, after, b.InsertionPoint(price), "price %s", price)
	}
}
