// Package domain contains the core business entities and value objects of the
// feed: users, posts, the aggregate post read model and token pairs. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
