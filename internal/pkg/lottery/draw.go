// Package lottery picks a winner from a ticket pool where every ticket has the same chance.
package lottery

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sort"
)

var (
	ErrEmptyPool           = errors.New("ticket pool is empty")
	errInvalidTicketsTotal = errors.New("invalid total tickets")
)

// Entry is one holder's stake in the pool.
type Entry struct {
	HolderID uint
	Tickets  int
}

type weightedEntry struct {
	HolderID      uint
	Tickets       int
	CumulativeSum int
}

// Pool holds entries by cumulative weight; it never materializes one slot per ticket.
type Pool struct {
	entries      []weightedEntry
	totalTickets int
}

// BuildPool merges entries of the same holder, keeping the first-seen order, and skips
// entries without tickets.
func BuildPool(entries []Entry) Pool {
	order := make([]uint, 0, len(entries))
	tickets := make(map[uint]int, len(entries))
	for _, e := range entries {
		if e.Tickets <= 0 {
			continue
		}
		if _, ok := tickets[e.HolderID]; !ok {
			order = append(order, e.HolderID)
		}
		tickets[e.HolderID] += e.Tickets
	}

	pool := Pool{entries: make([]weightedEntry, 0, len(order))}
	for _, holderID := range order {
		pool.totalTickets += tickets[holderID]
		pool.entries = append(pool.entries, weightedEntry{
			HolderID:      holderID,
			Tickets:       tickets[holderID],
			CumulativeSum: pool.totalTickets,
		})
	}

	return pool
}

func (p Pool) TotalTickets() int {
	return p.totalTickets
}

func (p Pool) Holders() int {
	return len(p.entries)
}

// TicketsOf returns how many tickets the holder has in the pool.
func (p Pool) TicketsOf(holderID uint) int {
	for _, e := range p.entries {
		if e.HolderID == holderID {
			return e.Tickets
		}
	}

	return 0
}

var drawRandomInt = secureRandomInt

// Draw picks a ticket uniformly at random and returns its holder.
func Draw(pool Pool) (uint, error) {
	if len(pool.entries) == 0 || pool.totalTickets <= 0 {
		return 0, ErrEmptyPool
	}

	picked, err := drawRandomInt(pool.totalTickets)
	if err != nil {
		return 0, fmt.Errorf("failed to pick random ticket: %w", err)
	}

	target := picked + 1 // 1-based
	idx := sort.Search(len(pool.entries), func(i int) bool {
		return pool.entries[i].CumulativeSum >= target
	})
	if idx >= len(pool.entries) {
		return 0, errInvalidTicketsTotal
	}

	return pool.entries[idx].HolderID, nil
}

func secureRandomInt(max int) (int, error) {
	if max <= 0 {
		return 0, errInvalidTicketsTotal
	}

	n, err := crand.Int(crand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}

	return int(n.Int64()), nil
}
