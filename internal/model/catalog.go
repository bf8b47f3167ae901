package model

// catalog is the fixed set of hunt tasks every team starts from. Task ids are
// stable and shared across teams; the slice itself is never handed out, only
// deep copies via Catalog().
var catalog = []Task{
	{
		ID:          "m1",
		Category:    "🛒 市場美食任務",
		Title:       "買到堅果糖餅並拍下流心照",
		Description: "前往BIFF廣場或傳統市場，購買著名的堅果糖餅(Ssiat Hotteok)。咬開或切開後，拍下裡面流出的黑糖堅果內餡。",
	},
	{
		ID:          "m2",
		Category:    "🛒 市場美食任務",
		Title:       "找到長條形及片狀魚糕",
		Description: "在魚糕店尋找兩種不同形狀的魚糕：長條形(Bar type)和片狀(Sheet type)。將它們放在一起合照。",
	},
	{
		ID:          "m3",
		Category:    "🛒 市場美食任務",
		Title:       "錄製全組說「Mashisoyo」影片",
		Description: "全員入鏡，對著鏡頭大聲說出「Mashisoyo」(好吃)。影片需清晰收錄聲音。",
	},
	{
		ID:          "c1",
		Category:    "🔍 文化搜尋任務",
		Title:       "與 1 米長的乾海帶合照",
		Description: "在乾貨店尋找超長的乾海帶(通常有包裝)。找一位隊員當比例尺，證明海帶長度接近或超過1米。",
	},
	{
		ID:          "c2",
		Category:    "🔍 文化搜尋任務",
		Title:       "辨認三種尺寸的鯷魚",
		Description: "找到販賣鯷魚的攤位，拍下大、中、小三種不同尺寸的乾鯷魚對比照。",
	},
	{
		ID:          "c3",
		Category:    "🔍 文化搜尋任務",
		Title:       "找到印有「福」字的韓式筷子",
		Description: "在餐具店或餐廳尋找金屬扁筷，上面需刻有漢字「福」。",
	},
	{
		ID:          "p1",
		Category:    "📸 創意拍照任務",
		Title:       "青沙浦紅白燈塔對峙照",
		Description: "利用錯位或構圖，拍攝一張看起來像是在紅白雙燈塔之間進行對峙或互動的照片。",
	},
	{
		ID:          "p2",
		Category:    "📸 創意拍照任務",
		Title:       "灌籃高手平交道火車合照",
		Description: "前往海雲台藍線公園的平交道（類似灌籃高手場景），在火車（膠囊列車或海岸列車）經過時合照。注意安全！",
	},
	{
		ID:          "g1",
		Category:    "🎮 傳統遊戲挑戰",
		Title:       "完成「打畫片」挑戰",
		Description: "成功將地上的畫片打翻過來。拍下成功的瞬間或與戰利品合照。",
	},
	{
		ID:          "g2",
		Category:    "🎮 傳統遊戲挑戰",
		Title:       "完成「投壺」挑戰",
		Description: "每人投擲一次，全隊累計投進至少3支箭。拍下投進的箭與壺的合照。",
	},
}

// Catalog returns a fresh copy of the task catalog for a new team
func Catalog() []Task {
	tasks := make([]Task, len(catalog))
	copy(tasks, catalog)
	return tasks
}

// CatalogSize is the number of tasks in the catalog
func CatalogSize() int {
	return len(catalog)
}
