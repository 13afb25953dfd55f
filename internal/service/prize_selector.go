package service

import (
	"github.com/loopiify-next/internal/models"
)

// SelectPrize 按概率区间选择奖品。
// roll 取值范围 [0, 100)，奖品按创建顺序累加概率，roll 落在累计区间内即中选；
// 剩余库存为 0 的奖品不参与累加，其概率区间整体让位给后续奖品。
// 全部区间都未命中时回退到最后一个奖品，命中奖品库存为 0 时返回 ErrPrizesExhausted。
func SelectPrize(prizes []models.LuckyDrawPrize, roll float64) (*models.LuckyDrawPrize, error) {
	if len(prizes) == 0 {
		return nil, ErrPrizeConfigInvalid
	}

	selected := &prizes[len(prizes)-1]
	cumulative := 0.0
	for i := range prizes {
		if prizes[i].RemainingQuantity <= 0 {
			continue
		}
		cumulative += prizes[i].Probability
		if roll <= cumulative {
			selected = &prizes[i]
			break
		}
	}

	if selected.RemainingQuantity <= 0 {
		return nil, ErrPrizesExhausted
	}
	return selected, nil
}
