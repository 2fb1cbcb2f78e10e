package main

import (
	"context"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"timecraft/internal/config"
	"timecraft/internal/db"
	"timecraft/internal/model"
	"timecraft/internal/repository"
	"timecraft/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.UserClientPermission{},
		&model.TimeEntry{},
		&model.RewriteRecord{},
		&model.RewriteVersion{},
		&model.AuditEvent{},
		&model.Template{},
		&model.BatchOperation{},
		&model.Track{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.LessonStep{},
		&model.UserProgress{},
		&model.StepCompletion{},
		&model.GamificationProfile{},
		&model.XPTransaction{},
		&model.Badge{},
		&model.UserBadge{},
		&model.AnalyticsEvent{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	if err := seedUsers(gormDB); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	if err := seedClients(gormDB); err != nil {
		log.Fatalf("Failed to seed clients: %v", err)
	}
	if err := seedPermissions(gormDB); err != nil {
		log.Fatalf("Failed to seed permissions: %v", err)
	}
	ctx := context.Background()
	if err := seedContent(ctx, repository.NewContentRepository(gormDB)); err != nil {
		log.Fatalf("Failed to seed learning content: %v", err)
	}
	if err := seedBadges(ctx, repository.NewGamificationRepository(gormDB)); err != nil {
		log.Fatalf("Failed to seed badges: %v", err)
	}

	log.Println("Seed completed")
}

func seedUsers(gormDB *gorm.DB) error {
	users := []struct {
		username string
		password string
		role     string
	}{
		{"admin", "admin123", "admin"},
		{"demo", "demo123", "user"},
	}

	for _, u := range users {
		hash, err := service.HashPassword(u.password)
		if err != nil {
			return err
		}
		user := model.User{
			Username:     u.username,
			PasswordHash: hash,
			Role:         u.role,
			Active:       true,
		}
		if err := gormDB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).Create(&user).Error; err != nil {
			return err
		}
		log.Printf("Seeded user %s (%s)", u.username, u.role)
	}
	return nil
}

func seedClients(gormDB *gorm.DB) error {
	clients := []model.Client{
		{
			ID:   "C001",
			Name: "Acme Manufacturing",
			Code: "ACME001",
			BillingGuidelines: "Narratives must be a single concise sentence in active voice. " +
				"Never reference internal discussions or strategy.",
		},
		{
			ID:   "C002",
			Name: "Globex Corporation",
			Code: "GLOBEX01",
			BillingGuidelines: "Detailed narratives preferred. Each entry must name the work product " +
				"and the matter phase it advances.",
		},
		{
			ID:   "C003",
			Name: "Initech LLC",
			Code: "INTECH99",
			BillingGuidelines: "Entries reviewed by an outside auditor. Avoid block billing and vague " +
				"verbs such as attend to, work on, handle.",
		},
	}

	for i := range clients {
		if err := gormDB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&clients[i]).Error; err != nil {
			return err
		}
		log.Printf("Seeded client %s (%s)", clients[i].ID, clients[i].Name)
	}
	return nil
}

func seedPermissions(gormDB *gorm.DB) error {
	var demo model.User
	if err := gormDB.Where("username = ?", "demo").First(&demo).Error; err != nil {
		return err
	}

	for _, clientID := range []string{"C001", "C002"} {
		perm := model.UserClientPermission{UserID: demo.ID, ClientID: clientID}
		if err := gormDB.Clauses(clause.OnConflict{DoNothing: true}).Create(&perm).Error; err != nil {
			return err
		}
	}
	log.Println("Seeded demo user permissions for C001, C002")
	return nil
}

type stepSeed struct {
	kind            model.StepKind
	title           string
	body            string
	xp              int
	expectedAnswer  string
	expectedPattern string
}

type lessonSeed struct {
	title string
	xp    int
	steps []stepSeed
}

func seedContent(ctx context.Context, content repository.ContentRepository) error {
	count, err := content.CountTracks(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Learning content already present, skipping")
		return nil
	}

	track := &model.Track{
		Slug:        "legal-billing-basics",
		Title:       "Legal Billing Basics",
		Description: "Write narratives that survive client billing review.",
		Position:    1,
		Published:   true,
	}
	if err := content.CreateTrack(ctx, track); err != nil {
		return err
	}

	courseModule := &model.CourseModule{
		TrackID:  track.ID,
		Title:    "Narrative Fundamentals",
		Position: 1,
	}
	if err := content.CreateModule(ctx, courseModule); err != nil {
		return err
	}

	lessons := []lessonSeed{
		{
			title: "What Makes a Narrative Billable",
			xp:    25,
			steps: []stepSeed{
				{
					kind:  model.StepContent,
					title: "The anatomy of a time entry",
					body:  "A billable narrative states the action, the work product and the purpose.",
					xp:    10,
				},
				{
					kind:           model.StepQuiz,
					title:          "Spot the vague verb",
					body:           "Which verb will an auditor flag: drafted, revised, or attended to?",
					xp:             15,
					expectedAnswer: "attended to",
				},
			},
		},
		{
			title: "Rewriting for Compliance",
			xp:    25,
			steps: []stepSeed{
				{
					kind:  model.StepContent,
					title: "Client rules come first",
					body:  "Every client has forbidden terms and required elements. Check them before writing.",
					xp:    10,
				},
				{
					kind:            model.StepCodeChallenge,
					title:           "Write a compliant entry",
					body:            "Rewrite: \"worked on deposition stuff\". Your answer must mention the deposition.",
					xp:              20,
					expectedPattern: "(?i)deposition",
				},
			},
		},
	}

	for i, l := range lessons {
		lesson := &model.Lesson{
			ModuleID: courseModule.ID,
			Title:    l.title,
			Position: i + 1,
			XPReward: l.xp,
		}
		if err := content.CreateLesson(ctx, lesson); err != nil {
			return err
		}
		for j, s := range l.steps {
			step := &model.LessonStep{
				LessonID:        lesson.ID,
				Kind:            s.kind,
				Position:        j + 1,
				Title:           s.title,
				Body:            s.body,
				XPReward:        s.xp,
				ExpectedAnswer:  s.expectedAnswer,
				ExpectedPattern: s.expectedPattern,
			}
			if err := content.CreateStep(ctx, step); err != nil {
				return err
			}
		}
		log.Printf("Seeded lesson %s (%d steps)", lesson.Title, len(l.steps))
	}

	log.Printf("Seeded track %s", track.Slug)
	return nil
}

func seedBadges(ctx context.Context, gamification repository.GamificationRepository) error {
	count, err := gamification.CountBadges(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Badges already present, skipping")
		return nil
	}

	badges := []model.Badge{
		{Slug: "first-lesson", Title: "First Steps", Description: "Complete your first lesson.", Metric: model.MetricLessonsCompleted, Threshold: 1},
		{Slug: "ten-lessons", Title: "Dedicated Learner", Description: "Complete ten lessons.", Metric: model.MetricLessonsCompleted, Threshold: 10},
		{Slug: "week-streak", Title: "On a Roll", Description: "Learn seven days in a row.", Metric: model.MetricStreakDays, Threshold: 7},
		{Slug: "month-streak", Title: "Unstoppable", Description: "Learn thirty days in a row.", Metric: model.MetricStreakDays, Threshold: 30},
		{Slug: "xp-1000", Title: "Rising Star", Description: "Earn 1000 XP.", Metric: model.MetricXPEarned, Threshold: 1000},
		{Slug: "first-track", Title: "Track Finisher", Description: "Complete every lesson in a track.", Metric: model.MetricTracksCompleted, Threshold: 1},
	}
	for i := range badges {
		if err := gamification.CreateBadge(ctx, &badges[i]); err != nil {
			return err
		}
	}
	log.Printf("Seeded %d badges", len(badges))
	return nil
}
