package apiserver

import "net/http"

func (h *Handler) handleClasses(w http.ResponseWriter, r *http.Request) {
	classes := h.catalog.Classes()
	views := make([]ClassView, 0, len(classes))
	for _, def := range classes {
		views = append(views, classView(def))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleEnemies(w http.ResponseWriter, r *http.Request) {
	enemies := h.catalog.Enemies()
	views := make([]EnemyView, 0, len(enemies))
	for _, def := range enemies {
		views = append(views, EnemyView{
			ID:      def.ID,
			Name:    def.Name,
			Emoji:   def.Emoji,
			Health:  def.Health,
			Damage:  def.Damage,
			Defense: def.Defense,
			Gold:    def.Gold,
			Exp:     def.Exp,
			Tier:    def.Tier,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleItems(w http.ResponseWriter, r *http.Request) {
	// Optional ?category= filter; empty means all categories.
	items := h.catalog.Items(r.URL.Query().Get("category"))
	views := make([]ItemView, 0, len(items))
	for _, def := range items {
		views = append(views, ItemView{
			ID:       def.ID,
			Name:     def.Name,
			Emoji:    def.Emoji,
			Category: def.Category,
			Bonuses:  def.Bonuses,
			Price:    def.Price,
			MinLevel: def.MinLevel,
		})
	}
	writeJSON(w, http.StatusOK, views)
}
