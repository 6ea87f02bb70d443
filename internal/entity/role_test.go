package entity

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand keeps roles in dealing order and always picks index n.
type fixedRand struct {
	n int
}

func (that fixedRand) IntN(n int) int {
	return min(that.n, n-1)
}

func (that fixedRand) Shuffle(int, func(i, j int)) {}

func makeRoster(n int) []Player {
	players := make([]Player, n)
	for i := range players {
		players[i] = Player{
			ID:       fmt.Sprintf("p%d", i+1),
			Username: fmt.Sprintf("player %d", i+1),
			ConnID:   fmt.Sprintf("conn-%d", i+1),
		}
	}

	return players
}

func TestCountRoles(t *testing.T) {
	t.Run("Follows the role formulas for every roster size", func(t *testing.T) {
		for n := MinPlayers; n <= 40; n++ {
			// When: counting roles for n players
			counts, err := CountRoles(n)
			require.NoError(t, err)

			// Then: every count matches the formula and they add up to n
			wantMrWhite := 1
			if n >= 10 && n <= 15 {
				wantMrWhite = 2
			}
			if n > 15 {
				wantMrWhite = 3
			}

			assert.Equal(t, wantMrWhite, counts.MrWhite, "mr white for %d", n)
			assert.Equal(t, max(2, n/4), counts.Undercover, "undercover for %d", n)
			assert.Equal(t, n, counts.Total(), "total for %d", n)
			assert.GreaterOrEqual(t, counts.Civilian, 0)
		}
	})

	t.Run("Five players get two undercovers, two civilians and one Mr. White", func(t *testing.T) {
		counts, err := CountRoles(5)

		require.NoError(t, err)
		assert.Equal(t, RoleCounts{Undercover: 2, Civilian: 2, MrWhite: 1}, counts)
	})

	t.Run("Fails with too few players", func(t *testing.T) {
		for _, n := range []int{0, 1, 2} {
			_, err := CountRoles(n)

			require.ErrorIs(t, err, apperror.ErrInsufficientPlayers)
		}
	})
}

func TestAssignRoles(t *testing.T) {
	t.Run("Deals one role per player with exactly one moderator", func(t *testing.T) {
		rnd := rand.New(rand.NewPCG(1, 2))

		for n := MinPlayers; n <= 25; n++ {
			// Given: a roster of n players
			roster := makeRoster(n)

			// When: assigning roles
			players, err := AssignRoles(roster, rnd)
			require.NoError(t, err)

			// Then: every player got an alive role entry, in roster order
			require.Len(t, players, n)

			counts, err := CountRoles(n)
			require.NoError(t, err)

			got := map[Role]int{}
			moderators := 0
			for i, player := range players {
				assert.Equal(t, roster[i].ID, player.ID)
				assert.Equal(t, roster[i].ConnID, player.ConnID)
				assert.True(t, player.Alive)
				got[player.Role]++
				if player.Moderator {
					moderators++
				}
			}

			assert.Equal(t, 1, moderators)
			assert.Equal(t, counts.Undercover, got[RoleUndercover])
			assert.Equal(t, counts.Civilian, got[RoleCivilian])
			assert.Equal(t, counts.MrWhite, got[RoleMrWhite])
		}
	})

	t.Run("Uses the randomizer to pick the moderator", func(t *testing.T) {
		// Given: a randomizer that always picks index 2
		players, err := AssignRoles(makeRoster(5), fixedRand{n: 2})
		require.NoError(t, err)

		// Then: the third player is the moderator
		assert.True(t, players[2].Moderator)
		assert.Equal(t, []Role{RoleUndercover, RoleUndercover, RoleCivilian, RoleCivilian, RoleMrWhite},
			[]Role{players[0].Role, players[1].Role, players[2].Role, players[3].Role, players[4].Role})
	})

	t.Run("Fails for fewer than three players", func(t *testing.T) {
		players, err := AssignRoles(makeRoster(2), fixedRand{})

		require.ErrorIs(t, err, apperror.ErrInsufficientPlayers)
		assert.Nil(t, players)
	})
}

func TestWordPair(t *testing.T) {
	t.Run("Split gives each side one of the words", func(t *testing.T) {
		pair := WordPair{First: "cat", Second: "dog"}

		civilian, undercover := pair.Split(fixedRand{n: 0})
		assert.Equal(t, "cat", civilian)
		assert.Equal(t, "dog", undercover)

		civilian, undercover = pair.Split(fixedRand{n: 1})
		assert.Equal(t, "dog", civilian)
		assert.Equal(t, "cat", undercover)
	})

	t.Run("Validate rejects empty or identical words", func(t *testing.T) {
		assert.ErrorIs(t, WordPair{First: "", Second: "dog"}.Validate(), ErrInvalidWordPair)
		assert.ErrorIs(t, WordPair{First: "cat", Second: " "}.Validate(), ErrInvalidWordPair)
		assert.ErrorIs(t, WordPair{First: "Cat", Second: "cat"}.Validate(), ErrInvalidWordPair)
		assert.NoError(t, WordPair{First: "cat", Second: "dog"}.Validate())
	})
}
