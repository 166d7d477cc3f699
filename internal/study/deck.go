// Package study はデッキ構築と学習サイクルの純粋ロジックを提供します。
// 永続化や HTTP には依存せず、service 層から値として使われます。
package study

import (
	"math/rand/v2"
)

// Shuffle は一様ランダムな並び替えを新しいスライスで返します (Fisher-Yates)
func Shuffle(wordIDs []uint) []uint {
	shuffled := make([]uint, len(wordIDs))
	copy(shuffled, wordIDs)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// RepairOrder は保存済みのデッキ順序を現在のカタログに合わせて補正します。
// カタログに存在しないIDは黙って捨て、保存順に含まれない新規IDは末尾に追加します。
// 補正が発生した場合は repaired=true を返します (呼び出し側が再保存を判断する)。
func RepairOrder(saved []uint, catalogIDs []uint) (order []uint, repaired bool) {
	known := make(map[uint]bool, len(catalogIDs))
	for _, id := range catalogIDs {
		known[id] = true
	}

	order = make([]uint, 0, len(catalogIDs))
	seen := make(map[uint]bool, len(saved))
	for _, id := range saved {
		if !known[id] {
			repaired = true
			continue
		}
		if seen[id] {
			repaired = true
			continue
		}
		seen[id] = true
		order = append(order, id)
	}
	for _, id := range catalogIDs {
		if !seen[id] {
			repaired = true
			order = append(order, id)
		}
	}
	return order, repaired
}

// FilterKnown は保存済みIDリストからカタログに存在しないIDだけを除去します。
// レビューモードのデッキ復元用で、欠落IDの追加は行いません。
func FilterKnown(saved []uint, catalogIDs []uint) []uint {
	known := make(map[uint]bool, len(catalogIDs))
	for _, id := range catalogIDs {
		known[id] = true
	}
	filtered := make([]uint, 0, len(saved))
	for _, id := range saved {
		if known[id] {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

// ClampIndex は保存されたカーソルをデッキ範囲内に収めます
func ClampIndex(saved, deckLen int) int {
	if deckLen == 0 {
		return 0
	}
	if saved < 0 {
		return 0
	}
	if saved > deckLen-1 {
		return deckLen - 1
	}
	return saved
}

// FirstIncompleteIndex はデッキ順で最初に completed=true の記録が無い単語の位置を返します。
// 全て完了済み、または記録が無い場合は 0 を返します。
func FirstIncompleteIndex(deckIDs []uint, completed map[uint]bool) int {
	for i, id := range deckIDs {
		if !completed[id] {
			return i
		}
	}
	return 0
}

// NextCursorHint は単語を回答した直後に保存する再開ヒントです
func NextCursorHint(index, deckLen int) int {
	if deckLen == 0 {
		return 0
	}
	return (index + 1) % deckLen
}

// Unlearned はサイクル完了時点で未習得の単語IDをデッキ順で返します。
// 直前に回答した単語は、進捗の読み取りタイミングによらず judgment を優先します。
func Unlearned(deckIDs []uint, completed map[uint]bool, justAnswered uint, judgment bool) []uint {
	unlearned := make([]uint, 0)
	for _, id := range deckIDs {
		done := completed[id]
		if id == justAnswered {
			done = judgment
		}
		if !done {
			unlearned = append(unlearned, id)
		}
	}
	return unlearned
}
