package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveLinks(t *testing.T) {
	assert.Equal(t, "อ่าน ข่าวนี้ ", RemoveLinks("อ่าน [ข่าวนี้](https://example.com/news) https://t.co/abc"))
	assert.Equal(t, "ดู  ด้วย", RemoveLinks("ดู www.example.com ด้วย"))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "อาหารอร่อยมาก ชอบ", CleanText("**อาหารอร่อยมาก**\n\n   ชอบ"))
	assert.Equal(t, "ร้านนี้ บริการแย่", CleanText("[ร้านนี้](https://example.com) บริการแย่ https://example.com/review"))
	assert.Equal(t, "ราคา < 100 & คุ้ม", CleanText("ราคา < 100 & คุ้ม"))
	assert.Equal(t, "", CleanText("https://example.com/only-a-link"))
}
