package services

import (
	"time"

	"gorm.io/datatypes"

	"jobhub_backend/internal/models"
)

// sampleJobs returns the three demo postings used to seed an empty store.
// IDs and content are fixed; posting times are relative so the listings look
// current.
func sampleJobs() []models.Job {
	now := time.Now().UTC()

	return []models.Job{
		{
			ID:       "1",
			Title:    "Frontend Developer",
			Company:  "TechCorp",
			Location: "New York, NY",
			Type:     models.JobTypeFullTime,
			Salary:   "$80,000 - $100,000",
			Description: "We are looking for a skilled Frontend Developer to join our team. " +
				"The ideal candidate should have experience with React, JavaScript, and modern CSS frameworks.",
			Requirements: datatypes.NewJSONSlice([]string{
				"Proficient in React, JavaScript, and HTML/CSS",
				"Experience with responsive design",
				"3+ years of frontend development experience",
				"Bachelor's degree in Computer Science or related field",
			}),
			CreatedBy: "admin",
			PostedAt:  now.Add(-5 * 24 * time.Hour),
		},
		{
			ID:       "2",
			Title:    "Backend Developer",
			Company:  "DataSystems",
			Location: "Remote",
			Type:     models.JobTypeFullTime,
			Salary:   "$90,000 - $120,000",
			Description: "We're seeking a Backend Developer with strong Node.js skills " +
				"to help build scalable APIs and services.",
			Requirements: datatypes.NewJSONSlice([]string{
				"Strong experience with Node.js and Express",
				"Knowledge of database systems (SQL and NoSQL)",
				"Understanding of RESTful API design",
				"Experience with cloud services (AWS/Azure/GCP)",
			}),
			CreatedBy: "admin",
			PostedAt:  now.Add(-2 * 24 * time.Hour),
		},
		{
			ID:       "3",
			Title:    "UX/UI Designer",
			Company:  "CreativeMinds",
			Location: "San Francisco, CA",
			Type:     models.JobTypeContract,
			Salary:   "$70 - $90 per hour",
			Description: "Join our design team to create beautiful, intuitive interfaces for our clients. " +
				"You'll work closely with developers and product managers.",
			Requirements: datatypes.NewJSONSlice([]string{
				"Portfolio demonstrating UI/UX skills",
				"Proficiency in Figma, Sketch, or Adobe XD",
				"Understanding of user-centered design principles",
				"Experience working in agile environments",
			}),
			CreatedBy: "admin",
			PostedAt:  now.Add(-7 * 24 * time.Hour),
		},
	}
}
