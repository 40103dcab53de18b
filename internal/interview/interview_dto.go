package interview

type ScheduleInterviewRequest struct {
	CandidateName string `json:"candidate_name" binding:"required"`
	InterviewDate string `json:"interview_date" binding:"required"`
}

type InterviewResponse struct {
	ID            uint   `json:"id"`
	CandidateName string `json:"candidate_name"`
	InterviewDate string `json:"interview_date"`
}
