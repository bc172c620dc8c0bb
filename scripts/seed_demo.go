// 手动灌入演示数据脚本
//
// 在空库上创建一个科目/章节/测验/题目的示例层级，方便本地联调前端。
// 管理员账号由主应用按配置种入，此脚本不创建用户。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"log"
	"os"
	"quiz_platform_backend/internal/config"
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/util"
	"quiz_platform_backend/pkg/database"
	"quiz_platform_backend/pkg/logger"
	"time"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, &cfg.Admin)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var count int64
	if err := db.Model(&model.Subject{}).Count(&count).Error; err != nil {
		log.Fatalf("查询失败: %v", err)
	}
	if count > 0 {
		log.Println("库中已有科目数据，跳过演示数据灌入")
		return
	}

	subject := &model.Subject{Name: "Mathematics", Description: "Algebra, geometry and arithmetic basics"}
	if err := db.Create(subject).Error; err != nil {
		log.Fatalf("创建科目失败: %v", err)
	}

	chapter := &model.Chapter{SubjectID: subject.ID, Name: "Algebra", Description: "Linear equations and expressions"}
	if err := db.Create(chapter).Error; err != nil {
		log.Fatalf("创建章节失败: %v", err)
	}

	quiz := &model.Quiz{
		ChapterID:   chapter.ID,
		Title:       "Algebra Basics",
		Description: "Warm-up quiz on linear equations",
		Date:        time.Now().AddDate(0, 0, 7),
		Duration:    30,
	}
	if err := db.Create(quiz).Error; err != nil {
		log.Fatalf("创建测验失败: %v", err)
	}

	questions := []struct {
		text    string
		options []string
		correct int
	}{
		{"What is 2 + 2?", []string{"3", "4", "5", "6"}, 1},
		{"Solve x in x + 3 = 7", []string{"2", "3", "4", "5"}, 2},
		{"What is 5 * 6?", []string{"30", "25", "35", "56"}, 0},
	}
	for _, q := range questions {
		encoded, err := util.EncodeOptions(q.options)
		if err != nil {
			log.Fatalf("编码选项失败: %v", err)
		}
		question := &model.Question{
			QuizID:        quiz.ID,
			QuestionText:  q.text,
			Options:       encoded,
			CorrectAnswer: q.correct,
		}
		if err := db.Create(question).Error; err != nil {
			log.Fatalf("创建题目失败: %v", err)
		}
	}

	log.Println("演示数据灌入完成")
}
