package quiz

import "github.com/spacesedan/thaisenti/internal/models"

var defaultBank = []models.QuizQuestion{
	{ID: "q01", Text: "อาหารร้านนี้อร่อยมาก พนักงานก็บริการดีสุดๆ", Expected: models.Positive, Hint: "อร่อย and บริการดี are praise."},
	{ID: "q02", Text: "รอคิวนานเกือบชั่วโมง แถมอาหารยังเย็นชืดอีก", Expected: models.Negative, Hint: "A long wait and cold food are complaints."},
	{ID: "q03", Text: "ร้านเปิดกี่โมงครับ", Expected: models.Neutral, Hint: "A question about opening hours carries no feeling."},
	{ID: "q04", Text: "ประทับใจมาก จะกลับมาใช้บริการอีกแน่นอน", Expected: models.Positive, Hint: "ประทับใจ means impressed."},
	{ID: "q05", Text: "สินค้าชำรุดตั้งแต่แกะกล่อง ผิดหวังมาก", Expected: models.Negative, Hint: "ผิดหวัง means disappointed."},
	{ID: "q06", Text: "พรุ่งนี้มีประชุมตอนสิบโมงเช้า", Expected: models.Neutral, Hint: "A plain statement of fact."},
	{ID: "q07", Text: "หนังเรื่องนี้สนุกจนลืมเวลาเลย", Expected: models.Positive, Hint: "สนุก means fun."},
	{ID: "q08", Text: "โทรไปกี่ครั้งก็ไม่มีใครรับสาย แย่มาก", Expected: models.Negative, Hint: "แย่ means bad."},
	{ID: "q09", Text: "ราคาอยู่ที่ 250 บาทต่อชิ้น", Expected: models.Neutral, Hint: "Reporting a price is neutral."},
	{ID: "q10", Text: "ขอบคุณทีมงานที่ช่วยแก้ปัญหาให้อย่างรวดเร็ว", Expected: models.Positive, Hint: "ขอบคุณ is thanks."},
	{ID: "q11", Text: "ห้องพักสกปรกและมีกลิ่นเหม็น ไม่แนะนำ", Expected: models.Negative, Hint: "สกปรก means dirty."},
	{ID: "q12", Text: "รถไฟฟ้าสายนี้วิ่งจากหมอชิตไปอ่อนนุช", Expected: models.Neutral, Hint: "Describing a route is informational."},
}
