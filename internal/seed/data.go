package seed

import (
	"time"

	"github.com/angelmondragon/wandermart-backend/internal/attractions"
	"github.com/angelmondragon/wandermart-backend/internal/posts"
	"github.com/angelmondragon/wandermart-backend/internal/products"
	"github.com/angelmondragon/wandermart-backend/internal/users"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

const (
	AdminID    = "admin1"
	MerchantID = "m1"
	TravelerID = "u1"

	DemoStoreName = "Panda Souvenirs"
)

const day = 24 * time.Hour

func demoUsers(now time.Time, passwordHash string) []users.User {
	return []users.User{
		{
			ID:           AdminID,
			Username:     "Admin User",
			Email:        "admin@test.com",
			PasswordHash: passwordHash,
			Role:         enums.UserRoleAdmin,
			Status:       enums.AccountStatusActive,
			AvatarURL:    "https://i.pravatar.cc/150?u=admin",
			CreatedAt:    now,
		},
		{
			ID:                MerchantID,
			Username:          "Merchant User",
			Email:             "merchant@test.com",
			PasswordHash:      passwordHash,
			Role:              enums.UserRoleMerchant,
			Status:            enums.AccountStatusActive,
			AvatarURL:         "https://i.pravatar.cc/150?u=merchant",
			QualificationURLs: []string{"https://picsum.photos/200/300"},
			CreatedAt:         now,
		},
		{
			ID:           TravelerID,
			Username:     "Traveler User",
			Email:        "user@test.com",
			PasswordHash: passwordHash,
			Role:         enums.UserRoleTraveler,
			Status:       enums.AccountStatusActive,
			AvatarURL:    "https://i.pravatar.cc/150?u=traveler",
			CreatedAt:    now,
		},
	}
}

func photo(n string) string { return "https://picsum.photos/800/600?random=" + n }

func photos(ns ...string) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = photo(n)
	}
	return out
}

func demoAttractions(now time.Time) []attractions.Attraction {
	return []attractions.Attraction{
		{
			ID:           "1",
			Title:        "Chengdu Research Base of Giant Panda Breeding",
			Description:  "A world-renowned breeding and research center for giant pandas.",
			Address:      "1375 Panda Rd, Chenghua District, Chengdu",
			Province:     "四川省",
			City:         "成都市",
			County:       "成华区",
			Region:       "四川省 成都市 成华区",
			Tags:         []string{"Nature", "Animals", "Family"},
			ImageURLs:    photos("1", "101", "102", "103"),
			OpenHours:    "07:30 - 18:00",
			DrivingTips:  "Accessible by Metro Line 3. Parking available at South Gate.",
			TravelerTips: "Arrive early in the morning (before 9 AM) to see active pandas during feeding time.",
			Status:       enums.AttractionStatusActive,
			CreatedAt:    now,
		},
		{
			ID:           "2",
			Title:        "The Palace Museum (Forbidden City)",
			Description:  "Imperial palace of the Ming and Qing dynasties. A masterpiece of Chinese architecture.",
			Address:      "4 Jingshan Front St, Dongcheng District, Beijing",
			Province:     "北京市",
			City:         "市辖区",
			County:       "东城区",
			Region:       "北京市 市辖区 东城区",
			Tags:         []string{"History", "Culture", "Architecture"},
			ImageURLs:    photos("2", "201", "202"),
			OpenHours:    "08:30 - 17:00",
			DrivingTips:  "No public parking. Use public transport (Metro Line 1).",
			TravelerTips: "Tickets must be booked online at least 7 days in advance. Closed on Mondays.",
			Status:       enums.AttractionStatusActive,
			CreatedAt:    now,
		},
		{
			ID:           "3",
			Title:        "West Lake Cultural Landscape",
			Description:  "Freshwater lake divided by causeways, famous for its scenic beauty and temples.",
			Address:      "Xihu District, Hangzhou, Zhejiang",
			Province:     "浙江省",
			City:         "杭州市",
			County:       "西湖区",
			Region:       "浙江省 杭州市 西湖区",
			Tags:         []string{"Nature", "History", "Water"},
			ImageURLs:    photos("3", "301"),
			OpenHours:    "24 Hours",
			DrivingTips:  "Traffic restrictions on weekends based on license plates.",
			TravelerTips: "Best viewed by boat. Sunset at Leifeng Pagoda is spectacular.",
			Status:       enums.AttractionStatusActive,
			CreatedAt:    now,
		},
		{
			ID:           "4",
			Title:        "Jiuzhaigou Valley",
			Description:  "Nature reserve and national park known for its many multi-level waterfalls and colorful lakes.",
			Address:      "Jiuzhaigou County, Ngawa Tibetan and Qiang Autonomous Prefecture, Sichuan",
			Province:     "四川省",
			City:         "阿坝藏族羌族自治州",
			County:       "九寨沟县",
			Region:       "四川省 阿坝藏族羌族自治州 九寨沟县",
			Tags:         []string{"Nature", "Hiking", "Photography"},
			ImageURLs:    photos("4", "401", "402", "403", "404"),
			OpenHours:    "08:00 - 17:00",
			DrivingTips:  "Mountain roads. Careful driving required in winter.",
			TravelerTips: "High altitude area, bring warm clothes even in summer. Allow at least 2 days for full exploration.",
			Status:       enums.AttractionStatusActive,
			CreatedAt:    now,
		},
		{
			ID:           "5",
			Title:        "Mount Qingcheng",
			Description:  "One of the birthplaces of Taoism, featuring lush forests and ancient temples.",
			Address:      "Dujiangyan, Chengdu, Sichuan",
			Province:     "四川省",
			City:         "成都市",
			County:       "都江堰市",
			Region:       "四川省 成都市 都江堰市",
			Tags:         []string{"Culture", "Hiking", "Mountain"},
			ImageURLs:    photos("5"),
			OpenHours:    "08:00 - 17:30",
			DrivingTips:  "Take Chengguan Expressway. Parking lot is 2km from gate (shuttle available).",
			TravelerTips: "The cable car saves time, but hiking up gives better views of the temples.",
			Status:       enums.AttractionStatusActive,
			CreatedAt:    now,
		},
		{
			ID:           "6",
			Title:        "The Great Wall (Mutianyu)",
			Description:  "One of the best-preserved sections of the Great Wall, offering spectacular views and less crowding.",
			Address:      "Mutianyu Road, Huairou District, Beijing",
			Province:     "北京市",
			City:         "市辖区",
			County:       "怀柔区",
			Region:       "北京市 市辖区 怀柔区",
			Tags:         []string{"History", "Hiking", "Architecture", "Mountain"},
			ImageURLs:    photos("6", "601"),
			OpenHours:    "07:30 - 17:30",
			DrivingTips:  "About 1.5 hours drive from Beijing city center. Parking is spacious.",
			TravelerTips: "Take the toboggan down for a fun experience!",
			Status:       enums.AttractionStatusActive,
			CreatedAt:    now,
		},
	}
}

func rating(n int) *int { return &n }

func demoPosts(now time.Time) []posts.Post {
	review := func(id, author, name, content string, stars, likes, daysAgo int) posts.Post {
		return posts.Post{
			ID:           id,
			AttractionID: "6",
			AuthorID:     author,
			AuthorName:   name,
			Content:      content,
			Rating:       rating(stars),
			ImageURLs:    []string{},
			Likes:        likes,
			Status:       enums.PostStatusActive,
			CreatedAt:    now.Add(-time.Duration(daysAgo) * day),
		}
	}
	return []posts.Post{
		review("post-101", "u1", "Traveler User", "Absolutely breathtaking views! The climb was steep but worth every step.", 5, 12, 5),
		review("post-102", "u2", "Hiker123", "Less crowded than Badaling. The autumn colors were amazing.", 5, 8, 10),
		review("post-103", "u3", "HistoryBuff", "Great restoration work. Very accessible with the cable car.", 4, 5, 15),
		review("post-104", "u4", "PandaFan", "The toboggan ride down is a must-do! So much fun.", 5, 20, 20),
		review("post-105", "u5", "GlobalTrekker", "A bit pricey for the cable car, but the wall itself is majestic.", 4, 3, 25),
		review("post-106", "u6", "LocalGuide", "Best time to visit is early morning to avoid tour groups.", 5, 15, 30),
	}
}

func demoProducts(now time.Time, storeName string) []products.Product {
	item := func(id, attractionID, attractionName, name, description, price string, stock int, images ...string) products.Product {
		urls := make([]string, len(images))
		for i, n := range images {
			urls[i] = "https://picsum.photos/400/400?random=" + n
		}
		return products.Product{
			ID:             id,
			SellerID:       MerchantID,
			SellerName:     storeName,
			AttractionID:   attractionID,
			AttractionName: attractionName,
			Name:           name,
			Description:    description,
			Price:          decimal.RequireFromString(price),
			Stock:          stock,
			ImageURLs:      urls,
			CreatedAt:      now,
		}
	}
	return []products.Product{
		item("p1", "1", "Chengdu Research Base of Giant Panda Breeding",
			"Plush Panda Toy", "Soft and cuddly panda plush.", "25.00", 100, "10"),
		item("p2", "5", "Mount Qingcheng",
			"Bamboo Fan", "Traditional hand fan made of bamboo.", "12.50", 50, "11"),
		item("p3", "2", "The Palace Museum (Forbidden City)",
			"Imperial Ceramic Tea Set",
			"A premium 5-piece ceramic tea set inspired by Qing Dynasty designs. Includes one teapot and four cups, packaged in a decorative gift box. The glaze features intricate blue and white patterns.",
			"88.00", 15, "20", "21", "22", "23"),
	}
}
