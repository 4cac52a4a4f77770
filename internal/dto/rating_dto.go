package dto

// RatingRequest adds or replaces a student's review of a course.
type RatingRequest struct {
	StudentID   string `json:"studentId" validate:"required"`
	StudentName string `json:"studentName"`
	Rating      int    `json:"rating" validate:"gte=1,lte=5"`
	Comment     string `json:"comment"`
}

// RatingStatsResponse aggregates a course's reviews.
type RatingStatsResponse struct {
	AverageRating      float64     `json:"averageRating"`
	TotalReviews       int         `json:"totalReviews"`
	RatingDistribution map[int]int `json:"ratingDistribution"`
}
