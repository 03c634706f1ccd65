package ingestion

import "github.com/futig/rag-backend/internal/entity"

const seedFilename = "default-knowledge"

// defaultKnowledge bootstraps an empty store with customer-service FAQs.
var defaultKnowledge = []entity.KnowledgeItem{
	{
		Content:  "Our company offers 24/7 customer support through multiple channels including email, phone, and live chat. Response times are typically under 2 hours for email and immediate for chat during business hours.",
		Metadata: entity.Metadata{entity.MetaCategory: "support", entity.MetaTopic: "customer-service"},
	},
	{
		Content:  "We have a 30-day return policy for all products. Items must be in original condition with tags attached. Refunds are processed within 5-7 business days after we receive the returned item.",
		Metadata: entity.Metadata{entity.MetaCategory: "policy", entity.MetaTopic: "returns"},
	},
	{
		Content:  "Shipping is free for orders over $50. Standard shipping takes 3-5 business days, while express shipping delivers in 1-2 business days. International shipping is available to over 100 countries.",
		Metadata: entity.Metadata{entity.MetaCategory: "shipping", entity.MetaTopic: "delivery"},
	},
	{
		Content:  "We accept all major credit cards, PayPal, Apple Pay, and Google Pay. All transactions are encrypted and secure. We do not store your credit card information on our servers.",
		Metadata: entity.Metadata{entity.MetaCategory: "payment", entity.MetaTopic: "methods"},
	},
	{
		Content:  "Our products come with a 1-year warranty covering manufacturing defects. Extended warranty options are available at checkout. Warranty claims can be filed through our customer portal.",
		Metadata: entity.Metadata{entity.MetaCategory: "policy", entity.MetaTopic: "warranty"},
	},
	{
		Content:  "Account registration is free and takes less than 2 minutes. Registered users get exclusive benefits including early access to sales, loyalty points, and personalized recommendations.",
		Metadata: entity.Metadata{entity.MetaCategory: "account", entity.MetaTopic: "registration"},
	},
	{
		Content:  "We use industry-standard encryption to protect your personal data. Your information is never shared with third parties without your consent. You can request data deletion at any time.",
		Metadata: entity.Metadata{entity.MetaCategory: "privacy", entity.MetaTopic: "data-protection"},
	},
	{
		Content:  "Track your order using the tracking number sent to your email. Real-time updates are available in your account dashboard. You'll receive notifications at each shipping milestone.",
		Metadata: entity.Metadata{entity.MetaCategory: "shipping", entity.MetaTopic: "tracking"},
	},
}

// DefaultKnowledge returns a copy of the built-in seed entries.
func DefaultKnowledge() []entity.KnowledgeItem {
	out := make([]entity.KnowledgeItem, len(defaultKnowledge))
	copy(out, defaultKnowledge)
	return out
}
