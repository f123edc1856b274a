package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"gorm.io/datatypes"
)

// fixtureNamespace keeps fixture ids stable across restarts.
var fixtureNamespace = uuid.MustParse("6f1c2a8e-3d5b-4c7a-9e0f-1b2c3d4e5f60")

func fixtureID(kind, slug string) string {
	return uuid.NewSHA1(fixtureNamespace, []byte(kind+"/"+slug)).String()
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string {
	return &s
}

// FixtureProjects are the sample projects the in-memory store starts with.
func FixtureProjects() []models.Project {
	projects := []models.Project{
		{
			Title:        "E-commerce Platform",
			Slug:         "ecommerce-platform",
			Description:  "A modern e-commerce platform built with React and Node.js featuring user authentication, payment processing, and inventory management.",
			Category:     "Web App",
			Featured:     true,
			Technologies: datatypes.JSONSlice[string]{"React", "Node.js", "PostgreSQL", "Stripe"},
			CustomURL:    strPtr("https://demo1.example.com"),
			Content: datatypes.NewJSONType(models.ProjectContent{
				Hero: models.Hero{
					Title:       "E-commerce Platform",
					Subtitle:    "Modern online shopping experience",
					Description: "A comprehensive e-commerce solution with modern UI and secure payment processing",
				},
				Features: []string{
					"User Authentication - Secure login and registration system",
					"Payment Integration - Multiple payment gateways including Stripe and PayPal",
					"Inventory Management - Real-time inventory tracking and management",
					"Order Processing - Complete order lifecycle management",
				},
				Architecture: map[string]any{
					"frontend":   "React with TypeScript",
					"backend":    "Node.js with Express",
					"database":   "PostgreSQL",
					"deployment": "Docker on AWS",
				},
			}),
			CreatedAt: day("2024-01-15"),
			UpdatedAt: day("2024-01-20"),
		},
		{
			Title:        "Mobile Banking App",
			Slug:         "mobile-banking-app",
			Description:  "A secure mobile banking application with biometric authentication, real-time transactions, and comprehensive financial management tools.",
			Category:     "Mobile App",
			Featured:     false,
			Technologies: datatypes.JSONSlice[string]{"React Native", "Firebase", "TypeScript", "Plaid API"},
			CustomURL:    strPtr("https://demo2.example.com"),
			Content: datatypes.NewJSONType(models.ProjectContent{
				Hero: models.Hero{
					Title:       "Mobile Banking App",
					Subtitle:    "Banking made simple and secure",
					Description: "Next-generation mobile banking with advanced security and user-friendly interface",
				},
				Features: []string{
					"Biometric Authentication - Fingerprint and face recognition for secure access",
					"Real-time Transactions - Instant money transfers and payments",
					"Account Management - Comprehensive account overview and management",
					"Financial Insights - AI-powered spending analysis and budgeting tools",
				},
				Architecture: map[string]any{
					"frontend":       "React Native",
					"backend":        "Firebase Functions",
					"database":       "Firestore",
					"authentication": "Firebase Auth with biometrics",
				},
			}),
			CreatedAt: day("2024-02-01"),
			UpdatedAt: day("2024-02-15"),
		},
		{
			Title:        "AI Chat Dashboard",
			Slug:         "ai-chat-dashboard",
			Description:  "An intelligent chat dashboard powered by AI with real-time conversations, analytics, and custom chatbot training capabilities.",
			Category:     "Web App",
			Featured:     true,
			Technologies: datatypes.JSONSlice[string]{"Vue.js", "Python", "FastAPI", "OpenAI API"},
			CustomURL:    strPtr("https://demo3.example.com"),
			Content: datatypes.NewJSONType(models.ProjectContent{
				Hero: models.Hero{
					Title:       "AI Chat Dashboard",
					Subtitle:    "Intelligent conversations at scale",
					Description: "Advanced AI-powered chat platform with analytics and custom model training",
				},
				Features: []string{
					"AI-Powered Responses - Smart conversation handling with context awareness",
					"Real-time Analytics - Live conversation metrics and performance insights",
					"Custom Training - Train chatbots on your specific data and use cases",
					"Multi-platform Integration - Connect with websites, apps, and messaging platforms",
				},
				Architecture: map[string]any{
					"frontend": "Vue.js 3 with Composition API",
					"backend":  "Python FastAPI",
					"database": "PostgreSQL with Vector search",
					"ai":       "OpenAI GPT-4 with custom fine-tuning",
				},
			}),
			CreatedAt: day("2024-02-20"),
			UpdatedAt: day("2024-03-01"),
		},
	}
	for i := range projects {
		projects[i].ID = fixtureID("project", projects[i].Slug)
		projects[i].Screenshots = datatypes.JSONSlice[string]{}
	}
	return projects
}

// textSection builds one of the legacy untyped sections the fixtures use.
func textSection(kind, content string) models.Section {
	doc, err := json.Marshal(map[string]string{"type": kind, "content": content})
	if err != nil {
		panic(err)
	}
	s, err := models.NewFreeformSection(doc)
	if err != nil {
		panic(err)
	}
	return s
}

const counterExample = `import React, { useState, useEffect } from 'react';

function Counter() {
  const [count, setCount] = useState(0);

  useEffect(() => {
    document.title = ` + "`Count: ${count}`" + `;
  }, [count]);

  return (
    <div>
      <p>You clicked {count} times</p>
      <button onClick={() => setCount(count + 1)}>
        Click me
      </button>
    </div>
  );
}`

// FixtureBlogs are the sample blog posts the in-memory store starts with.
func FixtureBlogs() []models.Blog {
	blogs := []models.Blog{
		{
			Title:            "Getting Started with React Hooks",
			Slug:             "getting-started-react-hooks",
			ShortDescription: "Learn how to use React Hooks effectively in your projects. This comprehensive guide covers useState, useEffect, and custom hooks with practical examples.",
			PublishedDate:    "2024-01-10",
			Author:           "John Doe",
			Thumbnail:        strPtr("https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=400"),
			Featured:         true,
			Published:        true,
			HeroSection: datatypes.NewJSONType(models.HeroSection{
				Title:    "Getting Started with React Hooks",
				Subtitle: "Modern React Development Guide",
				Gradient: "gradient-blue",
				Tags:     []string{"React", "JavaScript", "Hooks", "Frontend"},
			}),
			Sections: datatypes.JSONSlice[models.Section]{
				textSection("text", "React Hooks revolutionized how we write React components by allowing us to use state and other React features without writing a class. In this comprehensive guide, we'll explore the most commonly used hooks and how to implement them effectively in your projects."),
				textSection("code", counterExample),
				textSection("text", "The useState hook is the most fundamental hook that lets you add state to functional components. The useEffect hook lets you perform side effects in functional components, replacing componentDidMount, componentDidUpdate, and componentWillUnmount in class components."),
			},
			CreatedAt: day("2024-01-10"),
			UpdatedAt: day("2024-01-12"),
		},
		{
			Title:            "Building Scalable APIs with Node.js",
			Slug:             "building-scalable-apis-nodejs",
			ShortDescription: "Best practices for creating robust and scalable APIs with Node.js, Express, and modern development patterns including error handling and security.",
			PublishedDate:    "2024-01-25",
			Author:           "Jane Smith",
			Thumbnail:        strPtr("https://images.unsplash.com/photo-1627398242454-45a1465c2479?w=400"),
			Featured:         false,
			Published:        true,
			HeroSection: datatypes.NewJSONType(models.HeroSection{
				Title:    "Building Scalable APIs with Node.js",
				Subtitle: "Backend Development Masterclass",
				Gradient: "gradient-green",
				Tags:     []string{"Node.js", "API", "Backend", "Express"},
			}),
			Sections: datatypes.JSONSlice[models.Section]{
				textSection("text", "Creating scalable APIs is crucial for modern applications. In this guide, we'll cover essential patterns and practices for building robust Node.js APIs that can handle growth and maintain performance under load."),
				textSection("text", "Key principles include proper error handling, input validation, rate limiting, and implementing comprehensive logging and monitoring systems."),
			},
			CreatedAt: day("2024-01-25"),
			UpdatedAt: day("2024-01-28"),
		},
		{
			Title:            "The Future of AI in Web Development",
			Slug:             "future-ai-web-development",
			ShortDescription: "Exploring how artificial intelligence is transforming web development, from automated testing to intelligent code generation and user experience optimization.",
			PublishedDate:    "2024-02-10",
			Author:           "Alex Johnson",
			Thumbnail:        strPtr("https://images.unsplash.com/photo-1677442136019-21780ecad995?w=400"),
			Featured:         true,
			Published:        true,
			HeroSection: datatypes.NewJSONType(models.HeroSection{
				Title:    "The Future of AI in Web Development",
				Subtitle: "Transforming How We Build the Web",
				Gradient: "gradient-purple",
				Tags:     []string{"AI", "Web Development", "Future Tech", "Automation"},
			}),
			Sections: datatypes.JSONSlice[models.Section]{
				textSection("text", "Artificial Intelligence is rapidly changing the landscape of web development. From automated code generation to intelligent testing and personalized user experiences, AI tools are becoming essential for modern developers."),
				textSection("text", "This transformation includes AI-powered IDEs, intelligent debugging tools, automated accessibility testing, and dynamic content personalization that adapts to user behavior in real-time."),
			},
			CreatedAt: day("2024-02-10"),
			UpdatedAt: day("2024-02-12"),
		},
	}
	for i := range blogs {
		blogs[i].ID = fixtureID("blog", blogs[i].Slug)
	}
	return blogs
}
