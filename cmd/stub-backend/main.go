// Command stub-backend serves hardcoded backend responses so the dashboard
// can be developed against the BFF without running the real microservices.
// Point every *_SERVICE_URL at this process.
package main

import (
	"log"
	"net/http"
	"os"
)

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func main() {
	log.Println("WARNING: stub backend - all responses are HARDCODED placeholders")
	log.Println("For real services, set TENANT_SERVICE_URL / ORDERS_SERVICE_URL / ... instead")

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", jsonHandler(`{"status":"healthy","service":"stub-backend","warning":"hardcoded responses"}`))

	// Tenant service
	mux.HandleFunc("GET /api/v1/users/me/tenants", jsonHandler(`{"tenants":[
		{"id":"t-acme","slug":"acme","name":"Acme Outdoors","role":"OWNER","country":"AU"},
		{"id":"t-nova","slug":"nova","name":"Nova Beauty","role":"ADMIN","country":"IN"}
	]}`))
	mux.HandleFunc("GET /internal/tenants/t-acme", jsonHandler(`{"success":true,"data":{"id":"t-acme","slug":"acme","name":"Acme Outdoors"}}`))
	mux.HandleFunc("GET /api/v1/tenants/t-acme/context", jsonHandler(`{"success":true,"data":{"tenant":{"id":"t-acme","slug":"acme","name":"Acme Outdoors"},"features":{"campaigns":true,"customDomains":true}}}`))
	mux.HandleFunc("GET /api/v1/tenants/check-slug", jsonHandler(`{"success":true,"data":{"slug":"acme","exists":true,"available":false}}`))

	// Orders service: campaigns + marketing
	mux.HandleFunc("GET /campaigns", jsonHandler(`{"success":true,"data":[
		{"id":"cmp-1","name":"Spring Sale","type":"PROMOTION","channel":"EMAIL","status":"SENDING","recipientCount":1200,"deliveredCount":800,"openedCount":300},
		{"id":"cmp-2","name":"Welcome Series","type":"WELCOME","channel":"EMAIL","status":"DRAFT"},
		{"id":"cmp-3","name":"Cart Nudge","type":"ABANDONED_CART","channel":"SMS","status":"PAUSED"}
	]}`))
	mux.HandleFunc("GET /campaigns/stats", jsonHandler(`{"success":true,"data":{"totalCampaigns":3,"activeCampaigns":1,"totalRecipients":1200,"totalDelivered":800,"totalOpened":300,"totalRevenue":5400.50}}`))
	mux.HandleFunc("POST /campaigns/cmp-1/pause", jsonHandler(`{"success":true,"data":{"id":"cmp-1","name":"Spring Sale","type":"PROMOTION","channel":"EMAIL","status":"PAUSED"}}`))
	mux.HandleFunc("POST /campaigns/cmp-3/resume", jsonHandler(`{"success":true,"data":{"id":"cmp-3","name":"Cart Nudge","type":"ABANDONED_CART","channel":"SMS","status":"SENDING"}}`))
	mux.HandleFunc("POST /campaigns/cmp-2/send", jsonHandler(`{"success":true,"data":{"id":"cmp-2","name":"Welcome Series","type":"WELCOME","channel":"EMAIL","status":"SENDING"}}`))
	mux.HandleFunc("GET /marketing/segments", jsonHandler(`{"segments":[
		{"id":"seg-1","name":"All customers","memberCount":5400},
		{"id":"seg-2","name":"Lapsed 90d","memberCount":820}
	]}`))

	// Orders service: orders
	mux.HandleFunc("GET /orders", jsonHandler(`{"success":true,"data":[
		{"id":"ord-1","orderNumber":"AC-1001","customerName":"Dana Li","customerEmail":"dana@example.com","status":"PROCESSING","paymentStatus":"PAID","fulfillmentStatus":"PACKED","currency":"AUD","total":129.95},
		{"id":"ord-2","orderNumber":"AC-1002","customerName":"Sam Moore","customerEmail":"sam@example.com","status":"PLACED","paymentStatus":"PENDING","fulfillmentStatus":"UNFULFILLED","currency":"AUD","total":42.00}
	]}`))
	mux.HandleFunc("GET /orders/ord-1/transitions", jsonHandler(`{"success":true,"data":{"orderId":"ord-1","status":["SHIPPED","CANCELLED"],"paymentStatus":["REFUNDED"],"fulfillmentStatus":["DISPATCHED"]}}`))

	// Orders service: payment gateway configs (secrets already masked)
	mux.HandleFunc("GET /payments/configs", jsonHandler(`{"configs":[
		{"id":"pg-1","gatewayType":"STRIPE","publicKey":"pk_test_123","secretKey":"****4242","isEnabled":true,"isTestMode":true,"priority":1,"supportedCountries":["AU","NZ"]},
		{"id":"pg-2","gatewayType":"RAZORPAY","publicKey":"rzp_test_456","secretKey":"****9000","isEnabled":false,"isTestMode":true,"priority":2,"supportedCountries":["IN"]}
	]}`))

	// Shipping service
	mux.HandleFunc("GET /api/shipping/carrier-configs", jsonHandler(`{"carrierConfigs":[
		{"id":"cc-1","carrierCode":"AUSPOST","displayName":"Australia Post","isEnabled":true,"isTestMode":false},
		{"id":"cc-2","carrierCode":"DHL","displayName":"DHL Express","isEnabled":false,"isTestMode":true}
	]}`))
	mux.HandleFunc("POST /api/shipping/carrier-configs/cc-1/test-connection", jsonHandler(`{"success":true,"data":{"carrierConfigId":"cc-1","success":true,"latencyMs":112}}`))
	mux.HandleFunc("GET /api/shipping/shipping-settings", jsonHandler(`{"success":true,"data":{"tenantId":"t-acme","freeShippingEnabled":true,"freeShippingMinimum":100,"defaultCarrierCode":"AUSPOST","handlingFee":2.5,"dispatchLeadTimeDays":1}}`))

	// Custom-domain service
	mux.HandleFunc("GET /api/v1/domains", jsonHandler(`{"success":true,"data":[
		{"id":"dom-1","tenantId":"t-acme","hostname":"admin.acme-outdoors.com","targetType":"admin","status":"active"}
	]}`))

	// Settings service
	mux.HandleFunc("GET /api/v1/settings/admin/display", jsonHandler(`{"success":true,"data":{"applicationId":"admin","scope":"display","tenantId":"t-acme","values":{"theme":"dark","density":"compact"},"version":4}}`))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		log.Printf("stub: unhandled %s %s", r.Method, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"stub backend has no response for this route"}`))
	})

	port := os.Getenv("STUB_PORT")
	if port == "" {
		port = "4001"
	}
	log.Printf("stub backend listening on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatal(err)
	}
}
